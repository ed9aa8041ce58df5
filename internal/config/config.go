// Package config builds the csvsql command configuration from flags,
// environment variables and an optional YAML defaults file.
//
// Precedence, lowest first:
//  1. built-in defaults
//  2. environment variables (CSVSQL_*), which seed flag defaults
//  3. the YAML file named by --config
//  4. flags given on the command line
//
// For tests, use LoadFromArgs with a private FlagSet and a map-backed getenv:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg, err := config.LoadFromArgs(fs, getenv, []string{"--db", "sqlite:///out.db"})
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/csvsql"
	"github.com/nao1215/csvsql/infer"
	"github.com/nao1215/csvsql/internal/logging"
)

// ErrInvalid reports a flag, environment or file value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the parsed command line.
type Config struct {
	// Inputs are the positional arguments.
	Inputs []string

	Dialect       string
	DB            string
	Query         string
	Insert        bool
	Tables        string // comma-separated
	NoConstraints bool
	NoCreate      bool
	Blanks        bool
	DBSchema      string

	SniffLimit       int
	NoInference      bool
	NoHeaderRow      bool
	Delimiter        string
	Tabs             bool
	Encoding         string
	SkipLines        int
	SkipInitialSpace bool
	LazyQuotes       bool
	Sheet            string

	OutDelimiter string
	CRLF         bool

	LogLevel   string
	ConfigFile string
}

// aliases maps short flag names to their long names.
var aliases = map[string]string{
	"i": "dialect",
	"y": "snifflimit",
	"I": "no-inference",
	"H": "no-header-row",
	"d": "delimiter",
	"t": "tabs",
	"e": "encoding",
	"K": "skip-lines",
	"S": "skipinitialspace",
}

// LoadFromArgs defines every flag on fs, seeds defaults from getenv, parses
// args and applies the YAML file named by --config to flags that were not
// given explicitly.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Config, error) {
	cfg := &Config{}

	envOrDefault := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}
	sniffLimit := infer.NoSniffLimit
	if v := getenv("CSVSQL_SNIFF_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: CSVSQL_SNIFF_LIMIT=%q is not an integer", ErrInvalid, v)
		}
		sniffLimit = n
	}

	str := func(p *string, name, short, value, usage string) {
		fs.StringVar(p, name, value, usage)
		if short != "" {
			fs.StringVar(p, short, value, "shorthand for --"+name)
		}
	}
	boolean := func(p *bool, name, short, usage string) {
		fs.BoolVar(p, name, false, usage)
		if short != "" {
			fs.BoolVar(p, short, false, "shorthand for --"+name)
		}
	}
	integer := func(p *int, name, short string, value int, usage string) {
		fs.IntVar(p, name, value, usage)
		if short != "" {
			fs.IntVar(p, short, value, "shorthand for --"+name)
		}
	}

	str(&cfg.Dialect, "dialect", "i", envOrDefault("CSVSQL_DIALECT", ""), "Dialect of the generated CREATE TABLE statements")
	str(&cfg.DB, "db", "", envOrDefault("CSVSQL_DB", ""), "Connection descriptor of a database to create tables in, e.g. sqlite:///out.db")
	str(&cfg.Query, "query", "", "", "';'-separated SQL statements to run; the result of the last one is printed as CSV")
	boolean(&cfg.Insert, "insert", "", "Insert rows after creating each table; requires --db or --query")
	str(&cfg.Tables, "tables", "", "", "Comma-separated table names, used one per input")
	boolean(&cfg.NoConstraints, "no-constraints", "", "Omit lengths and NOT NULL constraints")
	boolean(&cfg.NoCreate, "no-create", "", "Skip CREATE TABLE and insert into existing tables; requires --insert")
	boolean(&cfg.Blanks, "blanks", "", "Keep empty strings instead of converting them to NULL")
	str(&cfg.DBSchema, "db-schema", "", envOrDefault("CSVSQL_DB_SCHEMA", ""), "Database schema to create tables in")

	integer(&cfg.SniffLimit, "snifflimit", "y", sniffLimit, "Bytes sampled to detect the delimiter; -1 reads everything, 0 disables sniffing")
	boolean(&cfg.NoInference, "no-inference", "I", "Treat every column as text")
	boolean(&cfg.NoHeaderRow, "no-header-row", "H", "The first row is data; columns are named column1, column2, ...")
	str(&cfg.Delimiter, "delimiter", "d", "", "Input field delimiter; 'tab' or '\\t' for a tab")
	boolean(&cfg.Tabs, "tabs", "t", "Input is tab-delimited")
	str(&cfg.Encoding, "encoding", "e", envOrDefault("CSVSQL_ENCODING", ""), "Input encoding, e.g. latin1 or utf-16")
	integer(&cfg.SkipLines, "skip-lines", "K", 0, "Lines to skip before the header row")
	boolean(&cfg.SkipInitialSpace, "skipinitialspace", "S", "Ignore whitespace immediately after the delimiter")
	boolean(&cfg.LazyQuotes, "lazy-quotes", "", "Accept quotes appearing inside unquoted fields")
	str(&cfg.Sheet, "sheet", "", "", "Worksheet to read from XLSX inputs; defaults to the first")

	str(&cfg.OutDelimiter, "out-delimiter", "", "", "Field delimiter of query output")
	boolean(&cfg.CRLF, "crlf", "", "Terminate query output records with \\r\\n")

	str(&cfg.LogLevel, "log-level", "", envOrDefault("CSVSQL_LOG_LEVEL", logging.DefaultLevel), "Log level: debug, info, warn, error or disabled")
	str(&cfg.ConfigFile, "config", "", "", "YAML file with default flag values")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Inputs = fs.Args()

	if cfg.ConfigFile != "" {
		if err := applyFile(fs, cfg.ConfigFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// applyFile sets every flag named in the YAML file that was not given on
// the command line. Keys are long flag names; lists are joined with ','.
func applyFile(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return fmt.Errorf("%w: read config file: %w", ErrInvalid, err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: parse config file %s: %w", ErrInvalid, path, err)
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		explicit[name] = true
	})

	for key, value := range values {
		if _, short := aliases[key]; short || key == "config" || fs.Lookup(key) == nil {
			return fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, key, path)
		}
		if explicit[key] {
			continue
		}
		if err := fs.Set(key, yamlString(value)); err != nil {
			return fmt.Errorf("%w: key %q in %s: %w", ErrInvalid, key, path, err)
		}
	}
	return nil
}

func yamlString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// TableNames splits Tables on ','. An empty value yields no names.
func (c *Config) TableNames() []string {
	if c.Tables == "" {
		return nil
	}
	return strings.Split(c.Tables, ",")
}

// InputPaths returns the positional inputs, or "-" when none were given and
// standard input is not a terminal.
func (c *Config) InputPaths(stdinIsTerminal bool) []string {
	if len(c.Inputs) > 0 || stdinIsTerminal {
		return c.Inputs
	}
	return []string{"-"}
}

// Options converts the configuration into run options.
func (c *Config) Options() (csvsql.Options, error) {
	delimiter, err := parseDelimiter("delimiter", c.Delimiter)
	if err != nil {
		return csvsql.Options{}, err
	}
	outDelimiter, err := parseDelimiter("out-delimiter", c.OutDelimiter)
	if err != nil {
		return csvsql.Options{}, err
	}

	opts := csvsql.DefaultOptions()
	opts.Dialect = c.Dialect
	opts.DB = c.DB
	opts.Query = c.Query
	opts.Insert = c.Insert
	opts.Tables = c.TableNames()
	opts.NoConstraints = c.NoConstraints
	opts.NoCreate = c.NoCreate
	opts.Blanks = c.Blanks
	opts.DBSchema = c.DBSchema
	opts.SniffLimit = c.SniffLimit
	opts.NoInference = c.NoInference
	opts.NoHeaderRow = c.NoHeaderRow
	opts.Reader = infer.ReaderOptions{
		Delimiter:        delimiter,
		Tabs:             c.Tabs,
		SkipInitialSpace: c.SkipInitialSpace,
		LazyQuotes:       c.LazyQuotes,
		Encoding:         c.Encoding,
		SkipLines:        c.SkipLines,
		Sheet:            c.Sheet,
	}
	opts.Writer = csvsql.WriterOptions{
		Delimiter: outDelimiter,
		UseCRLF:   c.CRLF,
	}
	return opts, nil
}

func parseDelimiter(flagName, value string) (rune, error) {
	switch value {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("%w: --%s must be a single character, got %q", ErrInvalid, flagName, value)
	}
	return r, nil
}
