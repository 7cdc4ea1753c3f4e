package errno

import (
	"errors"
	"fmt"
)

// code=0 请求成功
// code=4xx 客户端请求错误
// code=5xx 服务器端错误
// code=2xxxx 业务处理错误码

type Errno struct {
	Code    int
	Message string
}

// Error 实现error接口
func (e *Errno) Error() string {
	return e.Message
}

// Wrapf attaches detail to an Errno while keeping errors.Is matching
// against the sentinel value.
func (e *Errno) Wrapf(format string, args ...interface{}) error {
	return &wrapped{kind: e, detail: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	kind   *Errno
	detail string
}

func (w *wrapped) Error() string {
	return w.kind.Message + ": " + w.detail
}

func (w *wrapped) Unwrap() error {
	return w.kind
}

// CodeOf returns the Errno code carried by err, or 500 for untyped errors.
func CodeOf(err error) int {
	var e *Errno
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrInternalServer.Code
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrInvalidParam = &Errno{Code: 400, Message: "Invalid parameter"}
	ErrNotFound     = &Errno{Code: 404, Message: "Not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrDatabase       = &Errno{Code: 501, Message: "Database error"}

	// 校验错误码
	ErrMissingParam     = &Errno{Code: 20001, Message: "Missing required parameter"}
	ErrInvalidTimeRange = &Errno{Code: 20002, Message: "Invalid time range"}
	ErrInvalidCue       = &Errno{Code: 20003, Message: "Invalid subtitle cue"}
	ErrFontNotResolved  = &Errno{Code: 20004, Message: "Font not resolved"}
	ErrInvalidGain      = &Errno{Code: 20005, Message: "Invalid gain value"}
	ErrInvalidStatus    = &Errno{Code: 20006, Message: "Invalid status transition"}
	ErrFileNameIllegal  = &Errno{Code: 20007, Message: "File name is illegal"}

	// 资源缺失错误码
	ErrVideoNotFound  = &Errno{Code: 20010, Message: "Video not found"}
	ErrBgmNotFound    = &Errno{Code: 20011, Message: "Background track not found"}
	ErrSourceNotFound = &Errno{Code: 20012, Message: "Source media file not found"}

	// 外部协作方错误码
	ErrEngineFailed  = &Errno{Code: 20020, Message: "Media engine failed"}
	ErrStorageFailed = &Errno{Code: 20021, Message: "Object storage operation failed"}
	ErrFetchFailed   = &Errno{Code: 20022, Message: "Remote audio fetch failed"}
)

// IsValidation reports whether err is a caller-input error that is safe
// to report verbatim.
func IsValidation(err error) bool {
	code := CodeOf(err)
	return code == ErrInvalidParam.Code || (code >= 20001 && code <= 20009)
}

// IsNotFound reports whether err refers to a missing record or source file.
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == ErrNotFound.Code || (code >= 20010 && code <= 20019)
}
