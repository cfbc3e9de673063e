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
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/google/texdecode/core/image"
)

func newFormatsCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the supported compressed formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tBLOCK\tBYTES\tLAYOUT\tVK\tGL\tDXGI\tDECODER")
			for _, f := range image.Formats() {
				if !strings.Contains(strings.ToUpper(f.String()), strings.ToUpper(filter)) {
					continue
				}
				fp := f.Footprint()
				decoder := "built-in"
				switch {
				case f.External() && image.HasDecoder(f):
					decoder = "external"
				case f.External():
					decoder = "none"
				}
				fmt.Fprintf(w, "%v\t%dx%dx%d\t%d\t%v\t%d\t0x%04X\t%d\t%s\n",
					f, fp.Width, fp.Height, fp.Depth, fp.Bytes, f.Layout(),
					f.VkFormat(), f.GLInternalFormat(), f.DXGIFormat(), decoder)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Only list formats whose name contains this text")
	return cmd
}
