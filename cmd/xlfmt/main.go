package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/yamitzky/xlformula-go/xlformula"
)

var version = "dev"

type outputMode int

const (
	outputFormat outputMode = iota
	outputTable
	outputJSON
)

type options struct {
	mode      outputMode
	templates xlformula.TemplateConfig
	decoder   encoding.Encoding
}

// jsonToken is the JSON shape of a token in --json output.
type jsonToken struct {
	Value   string                 `json:"value"`
	Type    xlformula.TokenType    `json:"type"`
	Subtype xlformula.TokenSubtype `json:"subtype"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xlfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := fs.Bool("v", false, "show version")
	fs.BoolVar(showVersion, "version", false, "show version")

	tokens := fs.Bool("t", false, "print a token table instead of formatting")
	fs.BoolVar(tokens, "tokens", false, "print a token table instead of formatting")

	asJSON := fs.Bool("j", false, "print tokens as JSON")
	fs.BoolVar(asJSON, "json", false, "print tokens as JSON")

	templatesPath := fs.String("T", "", "JSON file with template overrides")
	fs.StringVar(templatesPath, "templates", "", "JSON file with template overrides")

	indentFlag := fs.String("i", "", "indent unit")
	fs.StringVar(indentFlag, "indent", "", "indent unit")

	filePath := fs.String("f", "", "read formulas from file, one per line")
	fs.StringVar(filePath, "file", "", "read formulas from file, one per line")

	inputEncoding := fs.String("c", "utf-8", "input encoding")
	fs.StringVar(inputEncoding, "inputencoding", "utf-8", "input encoding")

	fs.Usage = func() {
		fmt.Fprint(stderr, usageText())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	if *tokens && *asJSON {
		fmt.Fprintln(stderr, "cannot combine --tokens with --json")
		return 2
	}

	decoder, err := parseEncoding(*inputEncoding)
	if err != nil {
		fmt.Fprintf(stderr, "invalid input encoding: %v\n", err)
		return 2
	}

	templates := xlformula.DefaultTemplates()
	if *templatesPath != "" {
		templates, err = xlformula.LoadTemplates(*templatesPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if *indentFlag != "" {
		indent, err := parseEscapedString(*indentFlag)
		if err != nil {
			fmt.Fprintf(stderr, "invalid indent: %v\n", err)
			return 2
		}
		templates.IndentUnit = indent
	}

	opts := options{
		mode:      outputFormat,
		templates: templates,
		decoder:   decoder,
	}
	switch {
	case *tokens:
		opts.mode = outputTable
	case *asJSON:
		opts.mode = outputJSON
	}

	formulas := fs.Args()
	if *filePath != "" && len(formulas) > 0 {
		fmt.Fprintln(stderr, "cannot combine --file with formula arguments")
		return 2
	}

	if len(formulas) == 0 {
		input := stdin
		switch {
		case *filePath != "" && *filePath != "-":
			f, err := os.Open(*filePath)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			defer f.Close()
			input = f
		case *filePath == "" && isTerminal(stdin):
			fs.Usage()
			return 2
		}
		formulas, err = readFormulas(input, opts.decoder)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read formulas: %v\n", err)
			return 1
		}
	}

	w := bufio.NewWriter(stdout)
	if err := writeFormulas(w, formulas, opts); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func usageText() string {
	return `Usage:

 xlfmt [-h] [-v] [-t | -j] [-T TEMPLATES] [-i INDENT]
       [-f FILE] [-c INPUTENCODING] [formula ...]
positional arguments:

  formula               formulas to process; when none are given they are
                        read from --file or STDIN, one per line
optional arguments:

  -h, --help            show this help message and exit
  -v, --version         show program's version number and exit
  -t, --tokens          print a token table instead of formatting
  -j, --json            print the tokens of each formula as a JSON array
  -T TEMPLATES, --templates TEMPLATES
                        JSON file overriding the format templates, e.g.
                        {"argument": "{token}\n\n", "indentUnit": "  "}
  -i INDENT, --indent INDENT
                        indent unit, '\t' for a tab (default: '\t')
  -f FILE, --file FILE  read formulas from FILE, use '-' for STDIN
  -c INPUTENCODING, --inputencoding INPUTENCODING
                        encoding of FILE or STDIN: utf-8, latin1, cp1250,
                        cp1251, cp1252 or cp437 (default: utf-8)
`
}

var encodings = map[string]encoding.Encoding{
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"cp1250":       charmap.Windows1250,
	"windows-1250": charmap.Windows1250,
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"cp437":        charmap.CodePage437,
}

// parseEncoding returns the decoder for name, or nil for UTF-8.
func parseEncoding(name string) (encoding.Encoding, error) {
	name = strings.ToLower(name)
	switch name {
	case "utf-8", "utf8":
		return nil, nil
	}
	if enc, ok := encodings[name]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported encoding: %s", name)
}

func parseEscapedString(value string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' {
			b.WriteByte(value[i])
			continue
		}
		if i+1 >= len(value) {
			return "", fmt.Errorf("dangling escape")
		}
		i++
		switch value[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		default:
			return "", fmt.Errorf("unknown escape \\%c", value[i])
		}
	}
	return b.String(), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readFormulas returns the non-blank lines of r, decoded with enc if set.
func readFormulas(r io.Reader, enc encoding.Encoding) ([]string, error) {
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	var formulas []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		formulas = append(formulas, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return formulas, nil
}

func writeFormulas(w io.Writer, formulas []string, opts options) error {
	for i, formula := range formulas {
		tokens := xlformula.Tokenize(formula)
		switch opts.mode {
		case outputTable:
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := xlformula.WriteTable(w, tokens); err != nil {
				return err
			}
		case outputJSON:
			if err := writeJSON(w, tokens); err != nil {
				return err
			}
		default:
			out := xlformula.FormatTokens(tokens, opts.templates)
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			if _, err := io.WriteString(w, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeJSON(w io.Writer, tokens *xlformula.Tokens) error {
	items := tokens.Items()
	out := make([]jsonToken, 0, len(items))
	for _, tok := range items {
		out = append(out, jsonToken{Value: tok.Value, Type: tok.Type, Subtype: tok.Subtype})
	}
	return json.NewEncoder(w).Encode(out)
}
