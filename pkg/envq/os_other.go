//go:build !windows

package envq

import (
	"os"
	"strings"
	"sync"
	"unicode/utf16"
)

// systemQuerier emulates the Windows sized-query conventions on top of the
// portable os package, so the resolver behaves identically on every
// platform. The emulation is exact down to the terminator accounting and
// the zero/failure codes of each call.
type systemQuerier struct{}

var (
	searchPathMu  sync.RWMutex
	searchPathDir string
)

func setSearchPath(dir string) error {
	searchPathMu.Lock()
	searchPathDir = dir
	searchPathMu.Unlock()
	return nil
}

func (systemQuerier) ExpandStrings(template string, buf []uint16) (uint32, uint32) {
	return sizedFillInclusive(expandReferences(template), buf)
}

func (systemQuerier) EnvironmentVariable(name string, buf []uint16) (uint32, uint32) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return 0, codeEnvVarNotFound
	}
	return sizedFill(value, buf)
}

func (systemQuerier) CurrentDirectory(buf []uint16) (uint32, uint32) {
	wd, err := os.Getwd()
	if err != nil {
		return 0, codeGenFailure
	}
	return sizedFill(wd, buf)
}

func (systemQuerier) SearchPathDirectory(buf []uint16) (uint32, uint32) {
	searchPathMu.RLock()
	dir := searchPathDir
	searchPathMu.RUnlock()
	if dir == "" {
		// A zero size with a success code is the "no directory set" case.
		return 0, codeSuccess
	}
	return sizedFill(dir, buf)
}

// sizedFill follows the GetEnvironmentVariable convention: the required size
// counts the terminator, a successful fill reports the length without it.
func sizedFill(value string, buf []uint16) (uint32, uint32) {
	enc := utf16.Encode([]rune(value))
	need := uint32(len(enc) + 1)
	if uint32(len(buf)) < need {
		return need, codeSuccess
	}
	copy(buf, enc)
	buf[len(enc)] = 0
	return need - 1, codeSuccess
}

// sizedFillInclusive follows the ExpandEnvironmentStrings convention: the
// reported size counts the terminator on every call, successful or not.
func sizedFillInclusive(value string, buf []uint16) (uint32, uint32) {
	enc := utf16.Encode([]rune(value))
	need := uint32(len(enc) + 1)
	if uint32(len(buf)) < need {
		return need, codeSuccess
	}
	copy(buf, enc)
	buf[len(enc)] = 0
	return need, codeSuccess
}

// expandReferences substitutes %NAME% references against the process
// environment. A reference to an undefined variable is emitted verbatim,
// both percent signs included, matching the call this emulates. A lone
// percent sign with no closing partner is literal.
func expandReferences(s string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '%')
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		j := strings.IndexByte(s[i+1:], '%')
		if j < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		name := s[i+1 : i+1+j]
		if value, ok := lookupReference(name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[i : i+j+2])
		}
		s = s[i+j+2:]
	}
}

func lookupReference(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return os.LookupEnv(name)
}
