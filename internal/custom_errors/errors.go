package custom_errors

import "errors"

// Block validation
var (
	ErrBlockLimitReached     = errors.New("post already has the maximum number of blocks")
	ErrImageLimitReached     = errors.New("post already has the maximum number of image blocks")
	ErrConsecutiveTextBlocks = errors.New("two text blocks cannot be adjacent")
	ErrInvalidBlockType      = errors.New("invalid block type")
	ErrEmptyTextBlock        = errors.New("text block has no content")
	ErrTextTooLong           = errors.New("text block exceeds the word limit")
	ErrWordCountMismatch     = errors.New("text block word count does not match its content")
	ErrEmptyQuote            = errors.New("quote is required")
	ErrQuoteTooLong          = errors.New("quote exceeds the character limit")
	ErrMissingImageReference = errors.New("image block requires an uploaded image")
	ErrInvalidYouTubeURL     = errors.New("youtube url is not recognised")
	ErrContentTypeMismatch   = errors.New("block content does not match block type")
	ErrOrderIndexGap         = errors.New("block order indices are not contiguous")
)

// Blocks and posts
var (
	ErrBlockNotFound        = errors.New("block not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrBlockCreateFailed    = errors.New("failed to create block")
	ErrBlockUpdateFailed    = errors.New("failed to update block")
	ErrBlockDeleteFailed    = errors.New("failed to delete block")
	ErrBlockReorderFailed   = errors.New("failed to reorder blocks")
	ErrBlockPending         = errors.New("block is not confirmed yet")
	ErrAddFormClosed        = errors.New("no add form is open for this block type")
	ErrConfirmationRequired = errors.New("deleting a block requires confirmation")
)

// Images
var (
	ErrImageNotFound        = errors.New("image not found")
	ErrImageTooLarge        = errors.New("image exceeds the upload size limit")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageStoreFailed     = errors.New("failed to store image")
	ErrImageDeleteFailed    = errors.New("failed to delete image")
)

// Profiles and access
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrForbidden       = errors.New("forbidden")
)

// Infrastructure
var (
	ErrDatabaseQuery        = errors.New("database query failed")
	ErrDatabaseScan         = errors.New("database scan failed")
	ErrCacheMiss            = errors.New("cache miss")
	ErrInvalidInput         = errors.New("invalid input")
	ErrExternalServiceError = errors.New("external service error")
	ErrInternalServiceError = errors.New("internal service error")
	ErrRequestFailed        = errors.New("request failed")
)
