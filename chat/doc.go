// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat contains the conversational state of the data contract:
// messages and the append-only conversation context around them.
//
// # Key Types
//
//   - Message: a single turn with role, content, timestamp, and optional
//     function calls or a function result
//   - ConversationContext: ordered message history with snapshot model
//     and generation configuration
//   - Role: message sender enumeration (user, assistant, system) plus
//     open provider-specific extensions
//
// Messages are immutable once appended. ConversationContext is the only
// mutable aggregate in the contract and Append is its only mutation
// path: either the message is admitted and LastMessageAt advances in
// the same step, or the context is left untouched.
package chat
