package utils

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/YashDwivedi1205/AIFSA-Project/pkg/common"
)

// GoSafe runs fn in a goroutine and swallows any panic, reporting it to onPanic when set.
func GoSafe(fn func(), onPanic func(recovered interface{}, stack []byte)) {
	go func() {
		defer func() {
			if r := recover(); r != nil && onPanic != nil {
				onPanic(r, debug.Stack())
			}
		}()
		fn()
	}()
}

// CatchPanic calls fn and converts a panic into an error.
func CatchPanic(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// NormalizeSymbol upper-cases a symbol and strips the exchange suffix.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return strings.TrimSuffix(s, common.NSETickerSuffix)
}

// ToNSETicker maps a bare symbol to its provider ticker, e.g. TCS -> TCS.NS.
func ToNSETicker(symbol string) string {
	return NormalizeSymbol(symbol) + common.NSETickerSuffix
}
