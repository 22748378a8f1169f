package errors

import (
	stderrors "errors"

	"github.com/dalemusser/pmhub/internal/app/system/apierr"
)

func asAPIErr(err error) (*apierr.Error, bool) {
	var e *apierr.Error
	ok := stderrors.As(err, &e)
	return e, ok
}
