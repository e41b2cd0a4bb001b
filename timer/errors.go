package timer

import "github.com/ayoisaiah/ultradian/internal/apperr"

var errReadStatus = &apperr.Error{
	Message: "unable to read the status of the running session",
}
