package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/backup"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/server"
)

// runBackup archives the database, uploads and config file.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	output := fs.String("output", "", "archive path (default forzashop-backup-<timestamp>.tar.gz)")
	_ = fs.Parse(args)

	v, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *output == "" {
		*output = fmt.Sprintf("forzashop-backup-%s.tar.gz", time.Now().UTC().Format("20060102-150405"))
	}

	sum, err := backup.Backup(context.Background(), backup.Source{
		DBPath:     v.GetString("database.path"),
		UploadsDir: v.GetString("plugins.media.dir"),
		ConfigPath: v.ConfigFileUsed(),
	}, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backup failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("backup written to %s (%d files, %d bytes)\n", *output, sum.Files, sum.Bytes)
}

// runRestore extracts a backup archive. Stop the server first.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	target := fs.String("target", ".", "directory to restore into")
	force := fs.Bool("force", false, "overwrite existing files")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: forzashop restore [-target DIR] [-force] <archive.tar.gz>")
		os.Exit(2)
	}

	sum, err := backup.Restore(context.Background(), fs.Arg(0), *target, *force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "restore failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("restored %d files (%d bytes) into %s\n", sum.Files, sum.Bytes, *target)
	fmt.Printf("point database.path at %s and plugins.media.dir at %s\n", backup.DatabaseEntry, "uploads")
}
