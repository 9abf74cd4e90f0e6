// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	InputNotFoundId Id = iota + 1
	InputParseFailedId
	InvalidCodeId
	BuildFailedId
	ConfigLoadFailedId
	StrictAuditFailedId
	OutputWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal markdown using the given glamour
// style ("dark", "light", "notty", or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	inputNotFoundIssue = &Issue{
		id: InputNotFoundId,
		mdMsg: `
# Input file not found!

The report file you passed could not be read.

## Things you can try:
- Check the path for typos
- Print a complete example and start from it:
~~~
$ persephone example > report.yaml
~~~`,
	}

	inputParseFailedIssue = &Issue{
		id: InputParseFailedId,
		mdMsg: `
# Failed to read the report file!

The file is not valid CUE, JSON, YAML or TOML, or it does not match the
report schema.

## Common issues:
- Unknown field names (all field names are snake_case)
- Dates not written as ` + "`YYYY-MM-DD`" + `
- Amounts that are not plain decimal numbers
- Missing required fields such as ` + "`type`" + ` or ` + "`valid_from`" + `

## Things you can try:
- Read the path in the message above, e.g. ` + "`fields[0].areas[1].area`" + `
- Compare with the example file:
~~~
$ persephone example
~~~`,
	}

	invalidCodeIssue = &Issue{
		id: InvalidCodeId,
		mdMsg: `
# Unknown code in the report!

A code field holds a value that is not in its code table. Input files use the
wire codes, for example ` + "`HLA`" + ` for a main crop or ` + "`48+`" + ` for
incorporation after 48 hours.

## Things you can try:
- List the valid codes:
~~~
$ persephone codes
~~~`,
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Failed to build the document!

The report was read but could not be written as XML. This usually means a
text value contains characters that XML 1.0 does not allow (control
characters or invalid UTF-8).

## Things you can try:
- Check parcel names, fertilizer names and other free text for stray bytes
- Save the input file as UTF-8`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or is invalid.

## Things you can try:
- Show where the configuration is read from:
~~~
$ persephone config path
~~~

- Write a fresh default configuration:
~~~
$ persephone config init
~~~`,
	}

	strictAuditFailedIssue = &Issue{
		id: StrictAuditFailedId,
		mdMsg: `
# The report has audit findings!

Strict mode refuses to build a document while the audit reports problems such
as an empty field list, missing areas, or records that point at unknown
cultivations.

## Things you can try:
- Fix the findings listed above
- Build without strict mode:
~~~
$ persephone build request --strict=false report.yaml
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write the document!

The output file could not be created or written.

## Things you can try:
- Check that the target directory exists and is writable
- Omit ` + "`-o`" + ` to print the document to stdout`,
	}

	issues = map[Id]*Issue{
		inputNotFoundIssue.Id():     inputNotFoundIssue,
		inputParseFailedIssue.Id():  inputParseFailedIssue,
		invalidCodeIssue.Id():       invalidCodeIssue,
		buildFailedIssue.Id():       buildFailedIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		strictAuditFailedIssue.Id(): strictAuditFailedIssue,
		outputWriteFailedIssue.Id(): outputWriteFailedIssue,
	}
)

// Values returns every catalogued issue ordered by id.
func Values() []*Issue {
	return slices.SortedFunc(slices.Values(maps.Values(issues)), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
