package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"modelbridge/pkg/config"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage modelbridge as a system service",
	Long: `Manage modelbridge as a system service on the streamable HTTP transport.

The service manager runs "modelbridge service run", which always uses the http
transport since a daemon has no stdio client.

Examples:
  sudo modelbridge -c /etc/modelbridge/config.yaml service install
  sudo modelbridge service start
  sudo modelbridge service status`,
}

var serviceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run under the service manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunService()
	},
}

func init() {
	actions := []struct {
		use, short string
		fn         func() error
	}{
		{"install", "Install the system service", InstallService},
		{"uninstall", "Uninstall the system service", UninstallService},
		{"start", "Start the system service", func() error { return controlService("start") }},
		{"stop", "Stop the system service", func() error { return controlService("stop") }},
		{"restart", "Restart the system service", func() error { return controlService("restart") }},
		{"status", "Print the system service status", StatusService},
	}
	for _, a := range actions {
		fn := a.fn
		serviceCmd.AddCommand(&cobra.Command{
			Use:   a.use,
			Short: a.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := fn(); err != nil {
					return fmt.Errorf("%w\n\nNote: managing system services requires administrator privileges", err)
				}
				return nil
			},
		})
	}
	serviceCmd.AddCommand(serviceRunCmd)
}

// bridgeService implements service.Interface.
type bridgeService struct {
	cancel context.CancelFunc
	done   chan error
	logger service.Logger
}

// Start implements service.Interface. It must not block.
func (s *bridgeService) Start(svc service.Service) error {
	transport = config.TransportHTTP
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan error, 1)

	go func() {
		err := serve(ctx, cfg)
		if err != nil && s.logger != nil {
			s.logger.Errorf("modelbridge stopped: %v", err)
		}
		s.done <- err
		if !service.Interactive() && err != nil {
			os.Exit(1)
		}
	}()
	return nil
}

// Stop implements service.Interface.
func (s *bridgeService) Stop(svc service.Service) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	return <-s.done
}

// ServiceConfig returns the service definition. The config path given on the
// command line or in the environment is baked into the service arguments.
func ServiceConfig() *service.Config {
	args := []string{}
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(config.ConfigPathEnv))
	}
	if path != "" {
		args = append(args, "-c", path)
	}
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	args = append(args, "service", "run")

	return &service.Config{
		Name:        "modelbridge",
		DisplayName: "modelbridge MCP server",
		Description: "MCP tool server forwarding calls to a hosted model provider",
		Arguments:   args,
	}
}

func newService() (service.Service, *bridgeService, error) {
	prg := &bridgeService{}
	s, err := service.New(prg, ServiceConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("creating service: %w", err)
	}
	return s, prg, nil
}

// InstallService installs the system service.
func InstallService() error {
	s, _, err := newService()
	if err != nil {
		return err
	}
	if err := s.Install(); err != nil {
		return fmt.Errorf("installing service: %w", err)
	}
	fmt.Println("Service installed. Use 'modelbridge service start' to start it.")
	return nil
}

// UninstallService removes the system service.
func UninstallService() error {
	s, _, err := newService()
	if err != nil {
		return err
	}
	if err := s.Uninstall(); err != nil {
		return fmt.Errorf("uninstalling service: %w", err)
	}
	fmt.Println("Service uninstalled.")
	return nil
}

func controlService(action string) error {
	s, _, err := newService()
	if err != nil {
		return err
	}
	if err := service.Control(s, action); err != nil {
		return fmt.Errorf("%s service: %w", action, err)
	}
	fmt.Printf("Service %s: ok\n", action)
	return nil
}

// StatusService prints the service status.
func StatusService() error {
	s, _, err := newService()
	if err != nil {
		return err
	}
	status, err := s.Status()
	if err != nil && !errors.Is(err, service.ErrNotInstalled) {
		return fmt.Errorf("getting service status: %w", err)
	}
	fmt.Printf("Service Status: %s\n", statusString(status, err))
	return nil
}

func statusString(status service.Status, err error) string {
	if errors.Is(err, service.ErrNotInstalled) {
		return "Not installed"
	}
	switch status {
	case service.StatusRunning:
		return "Running"
	case service.StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// RunService runs under the service manager until it asks us to stop.
func RunService() error {
	s, prg, err := newService()
	if err != nil {
		return err
	}
	logger, err := s.Logger(nil)
	if err != nil {
		return fmt.Errorf("creating service logger: %w", err)
	}
	prg.logger = logger

	if err := s.Run(); err != nil {
		logger.Error(err)
		return err
	}
	return nil
}
