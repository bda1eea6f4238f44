package hdl

import "errors"

var ErrInternal = errors.New("internal error")
var ErrDecodeRequest = errors.New("decode request")
var ErrFileTooLarge = errors.New("file too large")
var ErrNoFile = errors.New("file is required")

var ErrToRetrievePathArg = errors.New("error to retrieve path argument")
var ErrFailedToGetPrincipal = errors.New("failed to get principal from context")
