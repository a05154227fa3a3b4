package args

import "strings"

// Exists reports whether any argument is -name or --name for one of names.
// The comparison ignores case.
func Exists(args []string, names ...string) bool {
	for _, arg := range args {
		flag, ok := trimDashes(arg)
		if !ok {
			continue
		}
		for _, name := range names {
			if strings.EqualFold(flag, name) {
				return true
			}
		}
	}
	return false
}

func trimDashes(arg string) (string, bool) {
	switch {
	case strings.HasPrefix(arg, "--"):
		return arg[2:], true
	case strings.HasPrefix(arg, "-"):
		return arg[1:], true
	}
	return "", false
}
