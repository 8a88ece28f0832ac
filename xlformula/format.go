package xlformula

import "strings"

// Placeholder is replaced by the token text in every template.
const Placeholder = "{token}"

// TemplateConfig holds the templates Format renders each kind of token
// with. Each template may contain Placeholder any number of times.
type TemplateConfig struct {
	FunctionStart string `json:"functionStart"`
	FunctionStop  string `json:"functionStop"`

	OperandError   string `json:"operandError"`
	OperandRange   string `json:"operandRange"`
	OperandLogical string `json:"operandLogical"`
	OperandNumber  string `json:"operandNumber"`
	OperandText    string `json:"operandText"`

	Argument string `json:"argument"`

	FunctionStartArray    string `json:"functionStartArray"`
	FunctionStartArrayRow string `json:"functionStartArrayRow"`
	FunctionStopArrayRow  string `json:"functionStopArrayRow"`
	FunctionStopArray     string `json:"functionStopArray"`

	// IndentUnit is repeated once per open scope at the start of a line.
	IndentUnit string `json:"indentUnit"`
}

// DefaultTemplates returns the default template set.
func DefaultTemplates() TemplateConfig {
	return TemplateConfig{
		FunctionStart:         "{token}(\n",
		FunctionStop:          "\n{token} )\n",
		OperandError:          "{token}",
		OperandRange:          "{token}",
		OperandLogical:        "{token}",
		OperandNumber:         "{token}",
		OperandText:           `"{token}"`,
		Argument:              "{token}\n",
		FunctionStartArray:    "",
		FunctionStartArrayRow: "{",
		FunctionStopArrayRow:  "}",
		FunctionStopArray:     "",
		IndentUnit:            "\t",
	}
}

// Merge returns a copy of c with every non-empty field of o copied over it.
func (c TemplateConfig) Merge(o TemplateConfig) TemplateConfig {
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&c.FunctionStart, o.FunctionStart)
	pick(&c.FunctionStop, o.FunctionStop)
	pick(&c.OperandError, o.OperandError)
	pick(&c.OperandRange, o.OperandRange)
	pick(&c.OperandLogical, o.OperandLogical)
	pick(&c.OperandNumber, o.OperandNumber)
	pick(&c.OperandText, o.OperandText)
	pick(&c.Argument, o.Argument)
	pick(&c.FunctionStartArray, o.FunctionStartArray)
	pick(&c.FunctionStartArrayRow, o.FunctionStartArrayRow)
	pick(&c.FunctionStopArrayRow, o.FunctionStopArrayRow)
	pick(&c.FunctionStopArray, o.FunctionStopArray)
	pick(&c.IndentUnit, o.IndentUnit)
	return c
}

// Format tokenizes formula and renders it as indented text.
//
// options overrides individual templates; its empty fields keep their
// defaults and a nil options uses DefaultTemplates. An empty field cannot
// blank out a template: to render with a template that is deliberately
// empty, build a complete TemplateConfig and use FormatTokens.
func Format(formula string, options *TemplateConfig) string {
	cfg := DefaultTemplates()
	if options != nil {
		cfg = cfg.Merge(*options)
	}
	return FormatTokens(Tokenize(formula), cfg)
}

// FormatTokens renders tokens using cfg as given.
//
// A stop token is rendered with the array or array row templates when the
// scope it closes was opened by an ARRAY or ARRAYROW start token, whatever
// name the stop itself carries.
func FormatTokens(tokens *Tokens, cfg TemplateConfig) string {
	var out strings.Builder
	depth := 0
	var open []string
	c := tokens.Cursor()
	for c.MoveNext() {
		tok, _ := c.Current()
		opener := ""
		if tok.IsStop() {
			if depth > 0 {
				depth--
			}
			if n := len(open); n > 0 {
				opener = open[n-1]
				open = open[:n-1]
			}
		}

		if strings.HasSuffix(out.String(), "\n") {
			out.WriteString(strings.Repeat(cfg.IndentUnit, depth))
		} else {
			out.WriteString(" ")
		}
		out.WriteString(cfg.render(tok, opener))

		if tok.IsStart() {
			depth++
			open = append(open, tok.Value)
		}
	}
	return out.String()
}

// render applies the templates for tok to its space-stripped value. For a
// stop token, opener is the value of the start token it closes.
func (c TemplateConfig) render(tok Token, opener string) string {
	s := strings.ReplaceAll(tok.Value, " ", "")
	switch tok.Type {
	case TokenFunction, TokenSubexpression:
		if tok.IsStart() {
			switch tok.Value {
			case ArrayName:
				s = applyTemplate(c.FunctionStartArray, s)
			case ArrayRowName:
				s = applyTemplate(c.FunctionStartArrayRow, s)
			}
			return applyTemplate(c.FunctionStart, s)
		}
		switch opener {
		case ArrayRowName:
			s = applyTemplate(c.FunctionStopArrayRow, s)
		case ArrayName:
			s = applyTemplate(c.FunctionStopArray, s)
		}
		return applyTemplate(c.FunctionStop, s)
	case TokenOperand:
		switch tok.Subtype {
		case SubtypeError:
			return applyTemplate(c.OperandError, s)
		case SubtypeRange:
			return applyTemplate(c.OperandRange, s)
		case SubtypeLogical:
			return applyTemplate(c.OperandLogical, s)
		case SubtypeNumber:
			return applyTemplate(c.OperandNumber, s)
		case SubtypeText:
			return applyTemplate(c.OperandText, s)
		}
	case TokenArgument:
		return applyTemplate(c.Argument, s)
	}
	return s
}

func applyTemplate(tmpl, value string) string {
	return strings.ReplaceAll(tmpl, Placeholder, value)
}
