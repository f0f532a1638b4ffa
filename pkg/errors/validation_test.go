package errors

import "testing"

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"positive", 30, 50, false},
		{"zero", 0, 0, false},
		{"zero width", 0, 10, false},
		{"negative size", -1, -1, true},
		{"negative width", -1, 0, true},
		{"negative height", 0, -1, true},
		{"at limit", MaxDimension, MaxDimension, false},
		{"width above limit", MaxDimension + 1, 1, true},
		{"max int height", 1, int(^uint(0) >> 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("ValidateSize error code = %v, want %v", GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"valid", 800, 600, false},
		{"zero width", 0, 600, true},
		{"negative height", 800, -1, true},
		{"above limit", MaxDimension + 1, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSizeRange(t *testing.T) {
	tests := []struct {
		name                   string
		minW, minH, maxW, maxH int
		wantErr                bool
	}{
		{"valid", 30, 30, 50, 50, false},
		{"equal", 40, 40, 40, 40, false},
		{"min exceeds max width", 60, 30, 50, 50, true},
		{"min exceeds max height", 30, 60, 50, 50, true},
		{"negative min", -1, 30, 50, 50, true},
		{"negative max", 0, 0, 50, -5, true},
		{"max int width", 0, 0, int(^uint(0) >> 1), 1, true},
		{"full range", 0, 0, MaxDimension, MaxDimension, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSizeRange(tt.minW, tt.minH, tt.maxW, tt.maxH)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSizeRange() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount(100, 1000); err != nil {
		t.Errorf("ValidateCount(100, 1000) = %v", err)
	}
	if err := ValidateCount(5, 0); err != nil {
		t.Errorf("ValidateCount with no limit = %v", err)
	}
	if err := ValidateCount(-1, 0); err == nil {
		t.Error("negative count should fail")
	}
	if err := ValidateCount(2000, 1000); err == nil {
		t.Error("count above limit should fail")
	}
}
