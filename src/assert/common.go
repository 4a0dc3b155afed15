// Package assert has a few tiny test helpers so that tests do not have to
// repeat the same if-error-fail dance over and over again. It is not a
// general purpose assertion library and is not supposed to become one.
package assert

import "fmt"

// TestingErrf is implemented by testing types which support reporting errors
// such as *testing.T and testing.TB.
type TestingErrf interface {
	Errorf(format string, args ...any)
	Helper()
}

// TestingFatalf is implemented by testing types which support fatal errors
// such as *testing.T and testing.TB.
type TestingFatalf interface {
	Fatalf(format string, args ...any)
	Helper()
}

func fromMsgAndArgs(msgAndArgs ...any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}

	fmtStr, ok := msgAndArgs[0].(string)
	if !ok {
		panic("The first argument in msgAndArgs must be a string format value.")
	}

	return fmt.Sprintf(" ("+fmtStr+")", msgAndArgs[1:]...)
}
