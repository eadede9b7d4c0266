package testutils

import (
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// CheckGoldenFile compares actual with the content of expectFilePath.
// A missing golden file is created from actual. Setting UPDATE_GOLDEN=1
// rewrites existing golden files instead of comparing.
func CheckGoldenFile(t TestingT, actual []byte, expectFilePath string) {
	t.Helper()

	expect, err := os.ReadFile(expectFilePath)
	if os.IsNotExist(err) || (err == nil && os.Getenv("UPDATE_GOLDEN") == "1") {
		err = os.MkdirAll(filepath.Dir(expectFilePath), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(expectFilePath, actual, 0644)
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("golden file %s written", expectFilePath)
		return
	} else if err != nil {
		t.Error(err)
		return
	}

	if string(expect) != string(actual) {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(expect)),
			B:        difflib.SplitLines(string(actual)),
			FromFile: expectFilePath,
			ToFile:   "actual",
			Context:  5,
		}
		d, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			t.Fatal(err)
		}
		t.Error(d)
	}
}
