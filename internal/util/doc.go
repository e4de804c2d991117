// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides width-aware text helpers for terminal output.
//
//	title := util.TruncateWidth(header, width-4)
//	body := util.Indent(util.Wrap(answer, 76), "  ")
package util
