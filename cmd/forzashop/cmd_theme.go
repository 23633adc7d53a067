package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/auth"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/config"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// runThemePush applies a preset to a running server's theme and saves the
// changed keys through the settings API.
func runThemePush(args []string) {
	fs := flag.NewFlagSet("theme-push", flag.ExitOnError)
	apiBase := fs.String("api", envOr("FS_URLS_API_BASE", "http://localhost:8080/api/v1"), "settings API base URL")
	token := fs.String("token", os.Getenv("FS_TOKEN"), "admin bearer token")
	name := fs.String("preset", "", "built-in preset name (instead of a YAML file)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: forzashop theme-push [-api URL] [-token T] (-preset NAME | preset.yaml)")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	preset, err := choosePreset(*name, fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "theme-push: %v\n", err)
		fs.Usage()
		os.Exit(2)
	}

	v := viper.New()
	v.Set("logging.level", "warn")
	v.Set("logging.format", "console")
	logger, err := config.NewLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gw := theme.NewHTTPGateway(*apiBase, *token, nil)
	n, err := pushPreset(ctx, gw, preset, logger)
	switch {
	case errors.Is(err, theme.ErrNoChanges):
		fmt.Printf("theme already matches preset %q\n", preset.Name)
	case err != nil:
		fmt.Fprintf(os.Stderr, "theme-push: %v\n", err)
		os.Exit(1)
	default:
		fmt.Printf("applied preset %q: %d settings updated\n", preset.Name, n)
	}
}

// pushPreset applies preset over the server's current theme and saves the
// changed keys. A failed fetch is returned, never replaced by the defaults.
func pushPreset(ctx context.Context, gw *theme.HTTPGateway, preset theme.Preset, logger *zap.Logger) (int, error) {
	records, err := gw.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch current theme: %w", err)
	}
	ed := theme.NewEditor(theme.Merge(records), gw, nil, theme.EditorConfig{}, logger)
	defer ed.Close()

	if err := ed.ApplyPreset(preset); err != nil {
		return 0, fmt.Errorf("apply preset: %w", err)
	}
	n, err := ed.Save(ctx)
	if err != nil && !errors.Is(err, theme.ErrNoChanges) {
		return 0, fmt.Errorf("save: %w", err)
	}
	return n, err
}

func choosePreset(name string, args []string) (theme.Preset, error) {
	switch {
	case name != "" && len(args) > 0:
		return theme.Preset{}, errors.New("give either -preset or a file, not both")
	case name != "":
		for _, p := range theme.BuiltinPresets() {
			if p.Name == name {
				return p, nil
			}
		}
		return theme.Preset{}, fmt.Errorf("%w: %q", theme.ErrPresetNotFound, name)
	case len(args) == 1:
		return theme.LoadPresetFile(args[0])
	default:
		return theme.Preset{}, errors.New("a preset is required")
	}
}

// runHashPassword prints a bcrypt hash for auth.admin_password_hash. The
// password is read from the first line of stdin.
func runHashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	cost := fs.Int("cost", 0, "bcrypt cost (0 uses the library default)")
	_ = fs.Parse(args)

	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintf(os.Stderr, "\nhash-password: read password: %v\n", err)
		os.Exit(1)
	}
	password := strings.TrimRight(line, "\r\n")
	if err := auth.ValidatePassword(password); err != nil {
		fmt.Fprintf(os.Stderr, "\nhash-password: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nhash-password: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr)
	fmt.Println(hash)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
