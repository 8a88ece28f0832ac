package xlformula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func tk(value string, typ TokenType, subtype TokenSubtype) Token {
	return Token{Value: value, Type: typ, Subtype: subtype}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name    string
		formula string
		want    []Token
	}{
		{"Empty", "", nil},
		{"EqualsOnly", "=", nil},
		{"LeadingSpacesAndEquals", "  =1", []Token{
			tk("1", TokenOperand, SubtypeNumber),
		}},
		{"Addition", "1+2", []Token{
			tk("1", TokenOperand, SubtypeNumber),
			tk("+", TokenOperatorInfix, SubtypeMath),
			tk("2", TokenOperand, SubtypeNumber),
		}},
		{"UnaryMinus", "-A1", []Token{
			tk("-", TokenOperatorPrefix, SubtypeNone),
			tk("A1", TokenOperand, SubtypeRange),
		}},
		{"UnaryPlusDropped", "=+1", []Token{
			tk("1", TokenOperand, SubtypeNumber),
		}},
		{"MinusAfterOperator", "1+-2", []Token{
			tk("1", TokenOperand, SubtypeNumber),
			tk("+", TokenOperatorInfix, SubtypeMath),
			tk("-", TokenOperatorPrefix, SubtypeNone),
			tk("2", TokenOperand, SubtypeNumber),
		}},
		{"MinusAfterPostfix", "10%-1", []Token{
			tk("10", TokenOperand, SubtypeNumber),
			tk("%", TokenOperatorPostfix, SubtypeNone),
			tk("-", TokenOperatorInfix, SubtypeMath),
			tk("1", TokenOperand, SubtypeNumber),
		}},
		{"Function", "SUM(1,2)", []Token{
			tk("SUM", TokenFunction, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
			tk(",", TokenArgument, SubtypeNone),
			tk("2", TokenOperand, SubtypeNumber),
			tk("", TokenFunction, SubtypeStop),
		}},
		{"FunctionWithSpaces", "SUM( 1 , 2 )", []Token{
			tk("SUM", TokenFunction, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
			tk(",", TokenArgument, SubtypeNone),
			tk("2", TokenOperand, SubtypeNumber),
			tk("", TokenFunction, SubtypeStop),
		}},
		{"LegacyFunctionMarker", "@SUM(A1)", []Token{
			tk("SUM", TokenFunction, SubtypeStart),
			tk("A1", TokenOperand, SubtypeRange),
			tk("", TokenFunction, SubtypeStop),
		}},
		{"Subexpression", "(1+2)*3", []Token{
			tk("", TokenSubexpression, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
			tk("+", TokenOperatorInfix, SubtypeMath),
			tk("2", TokenOperand, SubtypeNumber),
			tk("", TokenSubexpression, SubtypeStop),
			tk("*", TokenOperatorInfix, SubtypeMath),
			tk("3", TokenOperand, SubtypeNumber),
		}},
		{"MinusAfterSubexpression", "(1)-2", []Token{
			tk("", TokenSubexpression, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
			tk("", TokenSubexpression, SubtypeStop),
			tk("-", TokenOperatorInfix, SubtypeMath),
			tk("2", TokenOperand, SubtypeNumber),
		}},
		{"TopLevelUnion", "A1,B1", []Token{
			tk("A1", TokenOperand, SubtypeRange),
			tk(",", TokenOperatorInfix, SubtypeUnion),
			tk("B1", TokenOperand, SubtypeRange),
		}},
		{"SubexpressionUnion", "(A1,B1)", []Token{
			tk("", TokenSubexpression, SubtypeStart),
			tk("A1", TokenOperand, SubtypeRange),
			tk(",", TokenOperatorInfix, SubtypeUnion),
			tk("B1", TokenOperand, SubtypeRange),
			tk("", TokenSubexpression, SubtypeStop),
		}},
		{"EscapedQuote", `"ab""c"`, []Token{
			tk(`ab"c`, TokenOperand, SubtypeText),
		}},
		{"EmptyText", `""`, []Token{
			tk("", TokenOperand, SubtypeText),
		}},
		{"Concatenate", `"a"&"b"`, []Token{
			tk("a", TokenOperand, SubtypeText),
			tk("&", TokenOperatorInfix, SubtypeConcatenate),
			tk("b", TokenOperand, SubtypeText),
		}},
		{"ErrorLiteral", "#DIV/0!", []Token{
			tk("#DIV/0!", TokenOperand, SubtypeError),
		}},
		{"ErrorLiteralFollowedByText", "#REF!A1", []Token{
			tk("#REF!", TokenOperand, SubtypeError),
			tk("A1", TokenOperand, SubtypeRange),
		}},
		{"UnterminatedError", "#FOO", []Token{
			tk("#FOO", TokenOperand, SubtypeRange),
		}},
		{"Comparators", "A1>=B1", []Token{
			tk("A1", TokenOperand, SubtypeRange),
			tk(">=", TokenOperatorInfix, SubtypeLogical),
			tk("B1", TokenOperand, SubtypeRange),
		}},
		{"NotEqual", "A1<>1", []Token{
			tk("A1", TokenOperand, SubtypeRange),
			tk("<>", TokenOperatorInfix, SubtypeLogical),
			tk("1", TokenOperand, SubtypeNumber),
		}},
		{"Equal", "A1=1", []Token{
			tk("A1", TokenOperand, SubtypeRange),
			tk("=", TokenOperatorInfix, SubtypeLogical),
			tk("1", TokenOperand, SubtypeNumber),
		}},
		{"Power", "2^8", []Token{
			tk("2", TokenOperand, SubtypeNumber),
			tk("^", TokenOperatorInfix, SubtypeMath),
			tk("8", TokenOperand, SubtypeNumber),
		}},
		{"ScientificNotation", "=1.5E+3*2", []Token{
			tk("1.5E+3", TokenOperand, SubtypeNumber),
			tk("*", TokenOperatorInfix, SubtypeMath),
			tk("2", TokenOperand, SubtypeNumber),
		}},
		{"ScientificNegativeExponent", "2E-2", []Token{
			tk("2E-2", TokenOperand, SubtypeNumber),
		}},
		{"Logical", "IF(TRUE,FALSE,true)", []Token{
			tk("IF", TokenFunction, SubtypeStart),
			tk("TRUE", TokenOperand, SubtypeLogical),
			tk(",", TokenArgument, SubtypeNone),
			tk("FALSE", TokenOperand, SubtypeLogical),
			tk(",", TokenArgument, SubtypeNone),
			tk("true", TokenOperand, SubtypeRange),
			tk("", TokenFunction, SubtypeStop),
		}},
		{"QuotedSheet", "'Sheet 1'!A1", []Token{
			tk("Sheet 1!A1", TokenOperand, SubtypeRange),
		}},
		{"QuotedSheetEscapedQuote", "'It''s'!A1:B2", []Token{
			tk("It's!A1:B2", TokenOperand, SubtypeRange),
		}},
		{"BracketedWorkbook", "[Book 1.xlsx]Sheet1!A1", []Token{
			tk("[Book 1.xlsx]Sheet1!A1", TokenOperand, SubtypeRange),
		}},
		{"WhitespaceBetweenRanges", "A1:B2 C3", []Token{
			tk("A1:B2", TokenOperand, SubtypeRange),
			tk("C3", TokenOperand, SubtypeRange),
		}},
		{"TrailingWhitespace", "A1 ", []Token{
			tk("A1", TokenOperand, SubtypeRange),
		}},
		{"Array", "{1,2;3,4}", []Token{
			tk(ArrayName, TokenFunction, SubtypeStart),
			tk(ArrayRowName, TokenFunction, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
			tk(",", TokenArgument, SubtypeNone),
			tk("2", TokenOperand, SubtypeNumber),
			tk("", TokenFunction, SubtypeStop),
			tk(",", TokenArgument, SubtypeNone),
			tk(ArrayRowName, TokenFunction, SubtypeStart),
			tk("3", TokenOperand, SubtypeNumber),
			tk(",", TokenArgument, SubtypeNone),
			tk("4", TokenOperand, SubtypeNumber),
			tk(ArrayRowStopName, TokenFunction, SubtypeStop),
			tk(ArrayStopName, TokenFunction, SubtypeStop),
		}},
		{"UnexpectedQuote", `A"b"`, []Token{
			tk("A", TokenUnknown, SubtypeNone),
			tk("b", TokenOperand, SubtypeText),
		}},
		{"UnexpectedBrace", "A{1}", []Token{
			tk("A", TokenUnknown, SubtypeNone),
			tk(ArrayName, TokenFunction, SubtypeStart),
			tk(ArrayRowName, TokenFunction, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
			tk(ArrayRowStopName, TokenFunction, SubtypeStop),
			tk(ArrayStopName, TokenFunction, SubtypeStop),
		}},
		{"UnmatchedParen", "1)", []Token{
			tk("1", TokenOperand, SubtypeNumber),
			tk(")", TokenUnknown, SubtypeNone),
		}},
		{"UnmatchedBrace", "}", []Token{
			tk("}", TokenUnknown, SubtypeNone),
		}},
		{"BraceClosingSubexpression", "(1}", []Token{
			tk("", TokenSubexpression, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
			tk(ArrayRowStopName, TokenSubexpression, SubtypeStop),
			tk("}", TokenUnknown, SubtypeNone),
		}},
		{"RowBreakOutsideArray", "1;2", []Token{
			tk("1", TokenOperand, SubtypeNumber),
			tk(";", TokenUnknown, SubtypeNone),
			tk("2", TokenOperand, SubtypeNumber),
		}},
		{"UnclosedFunction", "SUM(1", []Token{
			tk("SUM", TokenFunction, SubtypeStart),
			tk("1", TokenOperand, SubtypeNumber),
		}},
		{"UnterminatedText", `"abc`, []Token{
			tk("abc", TokenOperand, SubtypeRange),
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Tokenize(c.formula).Items()
			if diff := cmp.Diff(c.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", c.formula, diff)
			}
		})
	}
}

func TestTokenizeScopesBalanced(t *testing.T) {
	formulas := []string{
		"SUM(1,2)",
		"IF(A1>0,SUM(B1:B10),-(C1+D1))",
		"{1,2;3,4;5,6}",
		"INDEX({1,2;3,4},2,1)",
		"((1))",
		"'My Sheet'!A1+[1]Data!B2",
		`CONCATENATE("a",IF(TRUE,"b","c"))`,
	}
	for _, formula := range formulas {
		t.Run(formula, func(t *testing.T) {
			var stack []TokenType
			for i, tok := range Tokenize(formula).Items() {
				if tok.Type == TokenUnknown {
					t.Fatalf("token %d is unknown: %v", i, tok)
				}
				switch {
				case tok.IsStart():
					stack = append(stack, tok.Type)
				case tok.IsStop():
					if len(stack) == 0 {
						t.Fatalf("token %d closes with no open scope", i)
					}
					if top := stack[len(stack)-1]; top != tok.Type {
						t.Fatalf("token %d closes %s, innermost open scope is %s", i, tok.Type, top)
					}
					stack = stack[:len(stack)-1]
				}
			}
			if len(stack) != 0 {
				t.Errorf("%d scopes left open", len(stack))
			}
		})
	}
}

func TestScanKeepsWhitespace(t *testing.T) {
	got := scan("A1   B1").Items()
	want := []Token{
		tk("A1", TokenOperand, SubtypeNone),
		tk("", TokenWhitespace, SubtypeNone),
		tk("B1", TokenOperand, SubtypeNone),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNonASCII(t *testing.T) {
	got := Tokenize(`"日本"&'Données 2'!A1`).Items()
	want := []Token{
		tk("日本", TokenOperand, SubtypeText),
		tk("&", TokenOperatorInfix, SubtypeConcatenate),
		tk("Données 2!A1", TokenOperand, SubtypeRange),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}
