package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newDetectCmd(a *app) *cobra.Command {
	var subset []string
	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Print language detection scores",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, content, e := readInput(cmd, args)
			if e != nil {
				return e
			}

			d, e := a.reg.Detect(cmd.Context(), string(content), subset...)
			if e != nil {
				return e
			}

			var data [][]string
			for _, res := range d.Results {
				data = append(data, []string{
					res.Language,
					strconv.Itoa(res.Score()),
					strconv.Itoa(res.Relevance),
					strconv.FormatBool(res.RootIllegal),
					strconv.Itoa(res.Steps),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"LANGUAGE", "SCORE", "RELEVANCE", "ILLEGAL", "STEPS"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&subset, "lang", "l", nil, "Languages to try, all if omitted")
	return cmd
}
