package hcl

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/nfsprofile/internal/config"
	"github.com/vk/nfsprofile/internal/params"
)

// WriteTemplate renders a parameters block holding every recognized
// parameter at its default value, with the label and choices as comments.
// The output can be edited and passed back as a parameters file.
func WriteTemplate(w io.Writer, profile *config.Profile, defs []params.Definition) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	header := fmt.Sprintf("Parameters for profile %q.", profile.Name)
	if profile.Description != "" {
		header += "\n" + profile.Description
	}
	root.AppendUnstructuredTokens(commentTokens(header))

	body := root.AppendNewBlock("parameters", nil).Body()
	for i, def := range defs {
		if i > 0 {
			body.AppendNewline()
		}
		body.AppendUnstructuredTokens(commentTokens(describe(def)))
		body.SetAttributeValue(def.Name, def.Default)
	}

	_, err := w.Write(hclwrite.Format(f.Bytes()))
	return err
}

func describe(def params.Definition) string {
	lines := []string{def.Label}
	if def.LongDescription != "" {
		lines = append(lines, def.LongDescription)
	}
	for _, c := range def.Choices {
		if c.Label != "" && c.Label != c.Value {
			lines = append(lines, fmt.Sprintf("  %s (%s)", c.Value, c.Label))
		} else {
			lines = append(lines, "  "+c.Value)
		}
	}
	return strings.Join(lines, "\n")
}

func commentTokens(text string) hclwrite.Tokens {
	var toks hclwrite.Tokens
	for _, line := range strings.Split(text, "\n") {
		toks = append(toks, &hclwrite.Token{
			Type:  hclsyntax.TokenComment,
			Bytes: []byte(strings.TrimRight("# "+line, " ") + "\n"),
		})
	}
	return toks
}
