package setpath

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/monolite/setpath/parser"
	"github.com/monolite/setpath/testdata"
	"github.com/monolite/setpath/transform"
)

func TestAcceptance(t *testing.T) {
	cases, err := testdata.AcceptanceCases()
	assert.NoError(t, err)
	assert.True(t, len(cases) > 0)

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			config := getDefaultConfig()
			if c.Config != nil {
				config, err = parseConfig(c.Config)
				assert.NoError(t, err)
			}

			result, err := TransformFile(c.InputName, []byte(c.Input), config)
			if c.ExpectedError != "" {
				verr, ok := transform.AsValidationError(err)
				assert.True(t, ok, "expected a validation error, got %v", err)
				assert.Equal(t, c.ExpectedError, verr.Kind.String())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, c.Expected, result.Code)
			assert.Equal(t, c.Expected != c.Input, result.Changed)

			// a second run finds nothing left to rewrite
			again, err := TransformFile(c.InputName, []byte(result.Code), config)
			assert.NoError(t, err)
			assert.Equal(t, result.Code, again.Code)
			assert.Equal(t, 0, len(again.Events))
		})
	}
}

func TestTransform(t *testing.T) {
	src := "import { set } from 'monolite';\nset(s, _ => _.a, 1);\nset(s).set(_ => _.b.c, 2);\n"

	result, err := Transform(src, DefaultOptions)
	assert.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "import { set } from 'monolite';\nset(s, ['a'], 1);\nset(s).set(['b', 'c'], 2);\n", result.Code)

	assert.Equal(t, 2, len(result.Events))
	assert.Equal(t, transform.ClassicalMatch, result.Events[0].Shape)
	assert.Equal(t, 2, result.Events[0].Position.Line)
	assert.Equal(t, transform.FluentLinkMatch, result.Events[1].Shape)
	assert.Equal(t, "b.c", result.Events[1].Path)
}

func TestTransformInsideSwitch(t *testing.T) {
	result, err := Transform("import { set } from 'm';\nswitch (x) { case 1: set(s, _ => _.a, 1); }\n", DefaultOptions)
	assert.NoError(t, err)
	assert.Equal(t, "import { set } from 'm';\nswitch (x) { case 1: set(s, ['a'], 1); }\n", result.Code)
	assert.Equal(t, 1, len(result.Events))
}

func TestTransformSkipsCallbacks(t *testing.T) {
	src := "import { set } from 'm';\nset(s, x => compute(x), 1);\nset(s, _ => { return _.a }, 1);\nset(s, async _ => _.a, 1);\nset?.(s, _ => _.a, 1);\n"

	result, err := Transform(src, DefaultOptions)
	assert.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, src, result.Code)
	assert.Equal(t, 0, len(result.Warnings))
}

func TestTransformWithoutRewritesKeepsSource(t *testing.T) {
	src := "const x   =  1 // untouched\n"

	result, err := Transform(src, Options{Reprint: true})
	assert.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, src, result.Code)
}

func TestTransformErrors(t *testing.T) {
	_, err := Transform("set(", Options{Filename: "broken.js"})
	perr, ok := parser.AsParseError(err)
	assert.True(t, ok)
	assert.Equal(t, "broken.js", perr.Filename)

	_, err = Transform("import { set } from 'm';\nset(s, (a, b) => a.x);\n", DefaultOptions)
	assert.True(t, errors.Is(err, transform.ErrInvalidAccessorArity))
}

func TestTransformLenientWarnings(t *testing.T) {
	opts := DefaultOptions
	opts.Transform.Strict = false

	result, err := Transform("import { set } from 'm';\nset(s, _ => x.a);\n", opts)
	assert.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, 1, len(result.Warnings))
	assert.Equal(t, transform.AccessorNotSubpropertyOfRoot, result.Warnings[0].Kind)
}

func TestTransformMarkdownPositions(t *testing.T) {
	src := "# Title\n\n```js\nimport { set } from 'm';\n\nset(s, _ => _.a, 1);\n```\n\n" +
		"```js\nimport { set } from 'm';\nset(s, (a, b) => a);\n```\n"

	opts := DefaultOptions
	opts.Transform.Strict = false
	result, err := TransformMarkdown(src, opts)
	assert.NoError(t, err)
	assert.True(t, result.Changed)

	assert.Equal(t, 1, len(result.Events))
	assert.Equal(t, 6, result.Events[0].Position.Line)

	assert.Equal(t, 1, len(result.Warnings))
	warning := result.Warnings[0]
	assert.Equal(t, 11, warning.Position.Line)
	assert.Equal(t, 8, warning.Position.Column)
	assert.Contains(t, warning.Frame, "> 11 | set(s, (a, b) => a);")

	_, err = TransformMarkdown(src, DefaultOptions)
	verr, ok := transform.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, 11, verr.Position.Line)
	assert.Contains(t, err.Error(), "code block at line 10")
}

func TestTransformMarkdownDisabled(t *testing.T) {
	src := "---\nsetpath: false\n---\n```js\nimport { set } from 'm';\nset(s, _ => _.a);\n```\n"

	result, err := TransformMarkdown(src, DefaultOptions)
	assert.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, src, result.Code)
}
