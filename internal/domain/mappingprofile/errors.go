package mappingprofile

import "errors"

var (
	ErrProfileNotFound   = errors.New("mapping profile not found")
	ErrProfileNameExists = errors.New("mapping profile name already exists")
	ErrEmptyProfileName  = errors.New("mapping profile name is required")
)
