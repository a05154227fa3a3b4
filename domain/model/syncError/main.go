package syncError

import "fmt"

// NotFoundError 探索したファイルが見つからなかった
type NotFoundError struct {
	FileName  string
	Dir       string
	Ascending bool
}

func (e *NotFoundError) Error() string {
	if e.Ascending {
		return fmt.Sprintf("%s file could not be found in %s or parent directories. Are you sure you are in an Angular directory?", e.FileName, e.Dir)
	}
	return fmt.Sprintf("%s file could not be found in %s. Are you sure you are in an Angular directory?", e.FileName, e.Dir)
}

// ParseError JSONとして読めない、または期待する形になっていない
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s could not be parsed", e.Path)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError 同じパッケージ名が1つのセクション（またはマージ対象のセクション群）に複数回現れた
type DuplicateKeyError struct {
	Path    string
	Package string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s contains multiple entries for package with name %s. Please fix this before running this tool again", e.Path, e.Package)
}
