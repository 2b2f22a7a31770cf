package split

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"stylesplit/config"
	"stylesplit/mozdoc"
)

type ruleDoc struct {
	Type  mozdoc.RuleType `yaml:"type" json:"type"`
	Value string          `yaml:"value" json:"value"`
}

type sectionDoc struct {
	Kind  string    `yaml:"kind" json:"kind"`
	Rules []ruleDoc `yaml:"rules,omitempty" json:"rules,omitempty"`
	Code  string    `yaml:"code" json:"code"`
}

// document is what yaml and json outputs carry for every source.
type document struct {
	Source   string       `yaml:"source" json:"source"`
	Run      string       `yaml:"run" json:"run"`
	Sections []sectionDoc `yaml:"sections" json:"sections"`
}

func newDocument(src, run string, sections []mozdoc.Section) *document {
	doc := &document{Source: filepath.ToSlash(src), Run: run, Sections: make([]sectionDoc, 0, len(sections))}
	for _, s := range sections {
		sd := sectionDoc{Kind: sectionKind(s), Code: mozdoc.CodeOf(s)}
		if scoped, ok := s.(mozdoc.Scoped); ok {
			for _, r := range scoped.Rules {
				sd.Rules = append(sd.Rules, ruleDoc{Type: r.Type, Value: r.Value})
			}
		}
		doc.Sections = append(doc.Sections, sd)
	}
	return doc
}

// docEncoder writes stream of documents in requested format, it has to be
// closed to flush yaml stream.
type docEncoder interface {
	Encode(v any) error
	io.Closer
}

type jsonEncoder struct {
	*json.Encoder
}

func (jsonEncoder) Close() error { return nil }

func newEncoder(w io.Writer, format config.OutputFmt) (docEncoder, error) {
	switch format {
	case config.OutputFmtYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc, nil
	case config.OutputFmtJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return jsonEncoder{enc}, nil
	}
	return nil, fmt.Errorf("format %s does not produce documents", format)
}

// prepareOutput makes sure file could be created at name.
func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return os.Remove(name)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

// writeDocumentFile stores single document in a file of its own.
func writeDocumentFile(name string, format config.OutputFmt, doc *document) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()

	enc, err := newEncoder(f, format)
	if err != nil {
		return err
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("unable to encode document: %w", err)
	}
	return enc.Close()
}

// writeSectionFile stores section as standalone stylesheet. Scoped section
// keeps its @-moz-document wrapper so concatenating files restores source
// structure.
func writeSectionFile(name string, s mozdoc.Section) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()
	_, err = mozdoc.Render(f, []mozdoc.Section{s})
	return err
}
