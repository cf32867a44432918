package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Dir is the directory, relative to the package under test, that holds the snapshots
const Dir = "testdata"

// UpdateEnv is the environment variable that allows missing snapshots to be written
const UpdateEnv = "UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used for snapshots
type TestingT interface {
	Helper()
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

var funcCount = make(map[string]int)

// ValidateSnapshot compares obj, encoded as indented JSON, with the stored snapshot
// The snapshot is named after the calling test function. A missing snapshot fails the test
// unless UPDATE_SNAPSHOTS is set, in which case it is written and the check passes.
// Use depth to skip helper frames between the test function and this call.
func ValidateSnapshot(t TestingT, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()
	skip := 1 + depth

	pc, _, _, _ := runtime.Caller(skip)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	call := funcCount[funcName]
	funcCount[funcName] = call + 1

	filename := filepath.Join(Dir, fmt.Sprintf("%s-%d.json", funcName, call))

	expects, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			t.Fatalf("could not read snapshot %s: %v", filename, err)
			return
		}

		if os.Getenv(UpdateEnv) == "" {
			t.Fatalf("snapshot %s does not exist, run with %s=1 to create it", filename, UpdateEnv)
			return
		}

		if err := create(filename, obj); err != nil {
			t.Fatalf("could not write snapshot %s: %v", filename, err)
		}

		return
	}

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode object: %v", err)
		return
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func create(filename string, obj interface{}) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}
