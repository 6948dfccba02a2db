package async

import (
	"errors"
	"fmt"
)

var (
	ErrAwaitCancelled = errors.New("async: wait cancelled before future completion")
	ErrPanic          = errors.New("async: computation panicked")
)

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
