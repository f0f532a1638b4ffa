package errors

// MaxDimension is the largest accepted width or height. It equals
// geom.MaxCoordinate, so validated sizes never overflow coordinate math.
const MaxDimension = 1 << 28

// ValidateSize checks that a rectangle size has no negative component and
// none above MaxDimension. A zero width or height is allowed.
func ValidateSize(width, height int) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidArgument, "height and width must be non-negative, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidArgument, "size %dx%d exceeds limit %d", width, height, MaxDimension)
	}
	return nil
}

// ValidateDimensions checks that a canvas has strictly positive dimensions
// no larger than MaxDimension.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "canvas dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidInput, "canvas %dx%d exceeds limit %d", width, height, MaxDimension)
	}
	return nil
}

// ValidateSizeRange checks that min and max are valid sizes and that min
// does not exceed max in either dimension.
func ValidateSizeRange(minW, minH, maxW, maxH int) error {
	if err := ValidateSize(minW, minH); err != nil {
		return err
	}
	if err := ValidateSize(maxW, maxH); err != nil {
		return err
	}
	if minW > maxW || minH > maxH {
		return New(ErrCodeInvalidInput, "minimum size %dx%d exceeds maximum size %dx%d", minW, minH, maxW, maxH)
	}
	return nil
}

// ValidateCount checks that a requested rectangle count is within [0, max].
func ValidateCount(n, max int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "count must be non-negative, got %d", n)
	}
	if max > 0 && n > max {
		return New(ErrCodeInvalidInput, "count %d exceeds limit %d", n, max)
	}
	return nil
}
