package sqlfmt

// Kind is the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Keyword
	QuotedIdent
	Number
	String
	LineComment
	BlockComment
	LParen
	RParen
	Comma
	Semicolon
	Dot
	Operator
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	Ident:        "IDENT",
	Keyword:      "KEYWORD",
	QuotedIdent:  "QUOTED_IDENT",
	Number:       "NUMBER",
	String:       "STRING",
	LineComment:  "LINE_COMMENT",
	BlockComment: "BLOCK_COMMENT",
	LParen:       "(",
	RParen:       ")",
	Comma:        ",",
	Semicolon:    ";",
	Dot:          ".",
	Operator:     "OPERATOR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a lexical unit. Text is the exact source slice, so quoting and
// escapes inside literals survive formatting untouched.
type Token struct {
	Kind        Kind
	Text        string
	SpaceBefore bool // whitespace or a comment preceded the token in the source
}

// keywords lists SQLite keywords. Anything listed here is uppercased by
// Pretty when it appears unquoted.
var keywords = map[string]struct{}{}

// typeNames are column type names. They are only treated as keywords in a
// type position, so a column named "date" or "text" keeps its case.
var typeNames = map[string]struct{}{}

func init() {
	for _, kw := range []string{
		"ABORT", "ACTION", "ADD", "AFTER", "ALL", "ALTER", "ALWAYS", "ANALYZE", "AND", "AS",
		"ASC", "ATTACH", "AUTOINCREMENT", "BEFORE", "BEGIN", "BETWEEN", "BY", "CASCADE",
		"CASE", "CAST", "CHECK", "COLLATE", "COLUMN", "COMMIT", "CONFLICT", "CONSTRAINT",
		"CREATE", "CROSS", "CURRENT", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
		"DATABASE", "DEFAULT", "DEFERRABLE", "DEFERRED", "DELETE", "DESC", "DETACH",
		"DISTINCT", "DO", "DROP", "EACH", "ELSE", "END", "ESCAPE", "EXCEPT", "EXCLUDE",
		"EXCLUSIVE", "EXISTS", "EXPLAIN", "FAIL", "FILTER", "FIRST", "FOLLOWING", "FOR",
		"FOREIGN", "FROM", "FULL", "GENERATED", "GLOB", "GROUP", "GROUPS", "HAVING", "IF",
		"IGNORE", "IMMEDIATE", "IN", "INDEX", "INDEXED", "INITIALLY", "INNER", "INSERT",
		"INSTEAD", "INTERSECT", "INTO", "IS", "ISNULL", "JOIN", "KEY", "LAST", "LEFT",
		"LIKE", "LIMIT", "MATCH", "MATERIALIZED", "NATURAL", "NO", "NOT", "NOTHING",
		"NOTNULL", "NULL", "NULLS", "OF", "OFFSET", "ON", "OR", "ORDER", "OTHERS", "OUTER",
		"OVER", "PARTITION", "PLAN", "PRAGMA", "PRECEDING", "PRIMARY", "QUERY", "RAISE",
		"RANGE", "RECURSIVE", "REFERENCES", "REGEXP", "REINDEX", "RELEASE", "RENAME",
		"REPLACE", "RESTRICT", "RETURNING", "RIGHT", "ROLLBACK", "ROW", "ROWID", "ROWS",
		"SAVEPOINT", "SELECT", "SET", "STORED", "STRICT", "TABLE", "TEMP", "TEMPORARY",
		"THEN", "TIES", "TO", "TRANSACTION", "TRIGGER", "UNBOUNDED", "UNION", "UNIQUE",
		"UPDATE", "USING", "VACUUM", "VALUES", "VIEW", "VIRTUAL", "WHEN", "WHERE",
		"WINDOW", "WITH", "WITHOUT",
	} {
		keywords[kw] = struct{}{}
	}
	for _, name := range []string{
		"BIGINT", "BLOB", "BOOLEAN", "CHAR", "CLOB", "DATE", "DATETIME", "DECIMAL",
		"DOUBLE", "FLOAT", "INT", "INTEGER", "NUMERIC", "NVARCHAR", "PRECISION", "REAL",
		"SMALLINT", "TEXT", "TINYINT", "UNSIGNED", "VARCHAR",
	} {
		typeNames[name] = struct{}{}
	}
}

// IsKeyword reports whether word (any case) is a recognized keyword.
func IsKeyword(word string) bool {
	_, ok := keywords[upperASCII(word)]
	return ok
}

// IsTypeName reports whether word (any case) is a recognized column type name.
func IsTypeName(word string) bool {
	_, ok := typeNames[upperASCII(word)]
	return ok
}

func upperASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'a' && c <= 'z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'a' && b[j] <= 'z' {
					b[j] -= 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
