package job

import "errors"

// Failure classification. Every fatal condition wraps exactly one of these
// sentinels; callers classify with errors.Is. Absent captions are not part
// of this taxonomy (see ytdlp.ErrNoCaptions).
var (
	ErrValidation = errors.New("validation error")
	ErrDependency = errors.New("missing dependency")
	ErrDownload   = errors.New("download error")
	ErrEncode     = errors.New("encode error")
)
