package camera

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

// ExecCamera — мост к платформенной камере: внешняя команда,
// печатающая URI снятого кадра в stdout. Отсутствие команды или отказ
// платформы в разрешении выглядят для слоя выше одинаково —
// e.ErrPermissionDenied.
type ExecCamera struct {
	cfg    *cfg.CameraCfg
	logger logger.Logger
}

func NewExecCamera(cfg *cfg.CameraCfg, logger logger.Logger) *ExecCamera {
	return &ExecCamera{
		cfg:    cfg,
		logger: logger,
	}
}

// LaunchCamera снимает кадр и возвращает его URI.
func (c *ExecCamera) LaunchCamera(ctx context.Context) (string, error) {
	const op = "ExecCamera.LaunchCamera"

	if strings.TrimSpace(c.cfg.Command) == "" {
		return "", e.Wrap(op, e.ErrPermissionDenied)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	parts := strings.Fields(c.cfg.Command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", e.Wrap(op, e.ErrPermissionDenied)
		}

		c.logger.Warnf("%s: capture command failed: %v", op, err)
		return "", e.Wrap(op, e.ErrCameraFailed)
	}

	uri := strings.TrimSpace(string(out))
	if uri == "" {
		return "", e.Wrap(op, e.ErrCameraFailed)
	}

	return uri, nil
}
