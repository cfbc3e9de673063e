// Copyright (C) 2026 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	_ "github.com/google/texdecode/core/image/raw"
	"github.com/google/texdecode/core/log"
)

// closeLog releases the log handler installed by setupLog.
var closeLog = func() {}

func newRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "texdecode",
		Short:         "Decode ETC, EAC and BC compressed textures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setupLog(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
	}
	pf := cmd.PersistentFlags()
	pf.String("log-level", "Info", "Log level (Verbose, Debug, Info, Warning, Error)")
	pf.String("log-file", "", "Also write JSON logs to this file, rotated at 10MB")
	pf.Int("jobs", 0, "Decode with this many goroutines (0 uses every CPU)")

	cmd.AddCommand(
		newFormatsCmd(),
		newInfoCmd(),
		newDecodeCmd(),
		newCompareCmd(),
	)
	return cmd
}

func setupLog(ctx context.Context, cmd *cobra.Command) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	level, _ := cmd.Flags().GetString("log-level")
	severity, err := log.ParseSeverity(level)
	if err != nil {
		return nil, errors.Wrap(err, "--log-level")
	}
	handler := log.Writer(os.Stderr)
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		handler = log.Fork(handler, log.RotatingFile{Path: path, MaxSizeMB: 10, MaxBackups: 3}.Handler())
	}
	closeLog = handler.Close
	ctx = log.PutHandler(ctx, handler)
	ctx = log.PutFilter(ctx, log.SeverityFilter(severity))
	ctx = log.PutTag(ctx, cmd.Name())
	return ctx, nil
}
