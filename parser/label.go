package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/merx-lang/merx/diag"
)

var (
	reYesNo     = regexp.MustCompile(`^(yes|no)$`)
	reExitOnly  = regexp.MustCompile(`^exit\s+(\d+)$`)
	reYesNoExit = regexp.MustCompile(`^(yes|no)\s*,\s*exit\s+(\d+)$`)
)

// classifyLabel implements spec.md §4.1.1's edge-label classification:
// empty text is LabelNone, "Yes"/"No" (case-insensitive) are the
// condition branch labels, "exit N" and "Yes, exit N"/"No, exit N"
// attach an exit code, and anything else is an opaque LabelCustom
// string kept only for display.
func (p *Parser) classifyLabel(text string) (EdgeLabel, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return EdgeLabel{Kind: LabelNone}, nil
	}
	lower := strings.ToLower(trimmed)

	if m := reYesNoExit.FindStringSubmatch(lower); m != nil {
		code, err := p.parseExitCode(m[2])
		if err != nil {
			return EdgeLabel{}, err
		}
		if m[1] == "yes" {
			return EdgeLabel{Kind: LabelYesExit, Code: code}, nil
		}
		return EdgeLabel{Kind: LabelNoExit, Code: code}, nil
	}
	if m := reExitOnly.FindStringSubmatch(lower); m != nil {
		code, err := p.parseExitCode(m[1])
		if err != nil {
			return EdgeLabel{}, err
		}
		return EdgeLabel{Kind: LabelExitOnly, Code: code}, nil
	}
	if reYesNo.MatchString(lower) {
		if lower == "yes" {
			return EdgeLabel{Kind: LabelYes}, nil
		}
		return EdgeLabel{Kind: LabelNo}, nil
	}
	return EdgeLabel{Kind: LabelCustom, Text: trimmed}, nil
}

func (p *Parser) parseExitCode(digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > 255 {
		return 0, p.errf(diag.MalformedExitCode, "exit code %q is not an integer in 0..255", digits)
	}
	return n, nil
}
