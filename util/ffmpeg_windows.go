package util

import (
    "errors"
    "context"
)

var UnsupportedError = errors.New("Unsupported")

func RecordVideo(mainQuit context.Context, videoOut string, width int, height int, scale int, frames <-chan []byte) error {
    return UnsupportedError
}
