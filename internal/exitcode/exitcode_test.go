package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"taskboard/internal/service"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"missing session", service.ErrUnauthenticated, AuthError},
		{"rejected session", &service.AuthError{Reason: "401"}, AuthError},
		{"validation", service.Required("title"), UserError},
		{"unknown task", fmt.Errorf("%w: abc", service.ErrTaskNotFound), UserError},
		{"remote", &service.RemoteError{Status: 500}, BackendError},
		{"network", &service.NetworkError{Err: errors.New("refused")}, BackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromError(tt.err); got != tt.want {
				t.Errorf("FromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
