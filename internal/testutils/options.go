package testutils

import (
	"fmt"
	"regexp"
)

// FindOptionString returns the value of a "# option:<name>: <value>" comment line in source.
func FindOptionString(t TestingT, optionName, source string) string {
	t.Helper()

	re, err := regexp.Compile(fmt.Sprintf(`(?m)^# option:%s:\s*(\S+)$`, regexp.QuoteMeta(optionName)))
	if err != nil {
		t.Fatal(err)
	}

	ss := re.FindStringSubmatch(source)
	if len(ss) != 2 {
		return ""
	}

	return ss[1]
}
