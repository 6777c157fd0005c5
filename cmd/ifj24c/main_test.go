package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// ifj24cBin is the path to the compiler binary built once by TestMain.
var ifj24cBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "ifj24c-test-")
	if err != nil {
		panic("MkdirTemp: " + err.Error())
	}
	defer os.RemoveAll(tmp)

	ifj24cBin = filepath.Join(tmp, "ifj24c")
	cmd := exec.Command("go", "build", "-o", ifj24cBin, ".")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build ifj24c: " + err.Error())
	}

	os.Exit(m.Run())
}

// run pipes src through the compiler and returns stdout, stderr and the
// process exit code.
func run(t *testing.T, src string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := exec.Command(ifj24cBin)
	cmd.Stdin = strings.NewReader(src)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	if err == nil {
		return outBuf.String(), errBuf.String(), 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return outBuf.String(), errBuf.String(), exitErr.ExitCode()
	}
	t.Fatalf("failed to run ifj24c: %v", err)
	return "", "", -1
}

const prologue = `const ifj = @import("ifj24.zig");` + "\n"

func TestMinimalProgram(t *testing.T) {
	src := prologue + "pub fn main() void { }\n"
	stdout, stderr, code := run(t, src)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, ".IFJcode24") {
		t.Errorf("output missing magic header: %q", stdout)
	}
	if !strings.Contains(stdout, "LABEL $main") {
		t.Errorf("output missing $main label:\n%s", stdout)
	}
}

func TestHelloWorld(t *testing.T) {
	src := prologue + `pub fn main() void {
		ifj.write("hello");
	}
`
	stdout, stderr, code := run(t, src)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, `PUSHS string@hello`) {
		t.Errorf("output missing pushed argument:\n%s", stdout)
	}
	if !strings.Contains(stdout, "CALL $ifj_write") {
		t.Errorf("output missing call to ifj_write:\n%s", stdout)
	}
}

func TestNullableUnwrap(t *testing.T) {
	src := prologue + `pub fn main() void {
		var x: ?i32 = ifj.readi32();
		if (x) |v| {
			ifj.write(v);
		} else {
			ifj.write("none");
		}
	}
`
	_, stderr, code := run(t, src)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
}

func TestTypeErrorExitsSeven(t *testing.T) {
	src := prologue + `pub fn main() void {
		var x: i32 = 1;
		var y: []u8 = "s";
		var z = x + y;
	}
`
	_, _, code := run(t, src)
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
}

func TestUnusedVariableExitsNine(t *testing.T) {
	src := prologue + `pub fn main() void {
		var x: i32 = 1;
	}
`
	_, _, code := run(t, src)
	if code != 9 {
		t.Errorf("exit code = %d, want 9", code)
	}
}

func TestMissingMainExitsThree(t *testing.T) {
	src := prologue + `pub fn helper() void { }
`
	_, _, code := run(t, src)
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}
