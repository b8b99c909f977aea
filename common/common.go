// /home/krylon/go/src/github.com/blicero/wecker/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 18:03:11 krylon>

// Package common provides constants and helpers used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/wecker/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

//go:generate ./build_time_stamp.pl

// Debug, if set, causes the application to log additional messages.
const Debug = true

// AppName is the name of the application, Version the version number,
// TimestampFormat the format for timestamps we use throughout the
// application.
const (
	AppName                  = "Wecker"
	Version                  = "0.1.0"
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	DefaultPort              = 5991
)

// MinLogLevel is the minimum level a message must have to get logged.
var MinLogLevel logutils.LogLevel = "TRACE"

// LogLevels are the valid log levels.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(logdomain.AllDomains()))

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = MinLogLevel
	}
} // func init()

// BaseDir is the folder where all application-specific files are stored.
var (
	BaseDir = filepath.Join(
		os.Getenv("HOME"),
		fmt.Sprintf(".%s.d", strings.ToLower(AppName)))
	LogPath = filepath.Join(BaseDir, fmt.Sprintf("%s.log", strings.ToLower(AppName)))
	DbPath  = filepath.Join(BaseDir, fmt.Sprintf("%s.db", strings.ToLower(AppName)))
)

// SetBaseDir sets the BaseDir and related variables and tries to create
// the directory if it does not exist already.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, fmt.Sprintf("%s.log", strings.ToLower(AppName)))
	DbPath = filepath.Join(BaseDir, fmt.Sprintf("%s.db", strings.ToLower(AppName)))

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir.
func InitApp() error {
	var err error

	if err = os.Mkdir(BaseDir, 0700); err != nil {
		if !os.IsExist(err) {
			return fmt.Errorf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// GetLogger tries to create a Logger for the given log source.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		name    = fmt.Sprintf("%s.%s", AppName, dom)
		logfile *os.File
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	if logfile, err = openLogfile(LogPath); err != nil {
		return nil, err
	}

	var writer = io.MultiWriter(os.Stdout, logfile)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: PackageLevels[dom],
		Writer:   writer,
	}

	var logger = log.New(filter, name+" ", log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

func openLogfile(path string) (*os.File, error) {
	var (
		err    error
		exists bool
	)

	if exists, err = krylib.Fexists(path); err != nil {
		return nil, err
	} else if exists {
		return os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	}

	return os.Create(path)
} // func openLogfile(path string) (*os.File, error)

// GetUUID returns a randomized UUID.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string

// TimeEqual returns true if the two timestamps are less than one second apart.
func TimeEqual(t1, t2 time.Time) bool {
	var delta = t1.Sub(t2)

	if delta < 0 {
		delta = -delta
	}

	return delta < time.Second
} // func TimeEqual(t1, t2 time.Time) bool
