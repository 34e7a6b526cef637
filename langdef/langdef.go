package langdef

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ava12/hilite/grammar"
	"github.com/ava12/hilite/internal/logging"
	"github.com/ava12/hilite/internal/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "langdef")

// ParseYAML decodes grammar description. name is used in error messages only.
func ParseYAML(name string, data []byte) (*grammar.Grammar, error) {
	g, e := decode(name, data)
	if e != nil {
		return nil, e
	}
	if g.Name == "" {
		return nil, missingNameError(name)
	}
	return g, nil
}

// ParseJSON decodes grammar description written as JSON.
func ParseJSON(name string, data []byte) (*grammar.Grammar, error) {
	return ParseYAML(name, data)
}

// ParseFile reads grammar file, format is chosen by extension.
// A grammar with no name gets the file base name without extension.
func ParseFile(path string) (*grammar.Grammar, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, unknownFormatError(path)
	}

	data, e := os.ReadFile(path)
	if e != nil {
		return nil, readError(path, errors.Wrap(e, "reading grammar file"))
	}

	g, e := decode(path, data)
	if e != nil {
		return nil, e
	}
	if g.Name == "" {
		g.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	log.WithField(logfields.File, path).WithField(logfields.Language, g.Name).Debug("grammar loaded")
	return g, nil
}

func decode(name string, data []byte) (*grammar.Grammar, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	g := &grammar.Grammar{}
	e := dec.Decode(g)
	if e == io.EOF {
		return nil, decodeError(name, errors.New("no grammar found"))
	}
	if e != nil {
		return nil, decodeError(name, e)
	}

	e = checkModes(name, "contains", g.Contains)
	if e != nil {
		return nil, e
	}
	for key, m := range g.Repository {
		e = checkMode(name, "repository."+key, m)
		if e != nil {
			return nil, e
		}
	}
	return g, nil
}

func checkModes(name, path string, ms []*grammar.Mode) error {
	for i, m := range ms {
		e := checkMode(name, path+"["+strconv.Itoa(i)+"]", m)
		if e != nil {
			return e
		}
	}
	return nil
}

func checkMode(name, path string, m *grammar.Mode) error {
	if m == nil {
		return emptyModeError(name, path)
	}
	if m.IsRef() {
		return nil
	}

	e := checkModes(name, path+".contains", m.Contains)
	if e == nil {
		e = checkModes(name, path+".variants", m.Variants)
	}
	return e
}
