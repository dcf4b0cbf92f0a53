// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}
