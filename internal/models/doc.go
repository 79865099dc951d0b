// Package models defines the core domain entities for PayPals.
//
// # Entities
//
//   - User: a registered account that can log in and belong to groups
//   - Group: a named collection of members that owns expenses and settlements
//   - Member: a participant in one group, either a registered user or a guest
//   - Expense: one outlay paid by a member, owed in parts by others
//   - ExpenseSplit: one member's share of an expense
//   - Settlement: a recorded payment between two members
//
// # Design Principles
//
//  1. Monetary amounts are stored as int64 minor units (cents). Decimal
//     strings exist only at the HTTP boundary.
//  2. Relationships use ID strings instead of pointers to avoid circular
//     references.
//  3. Balances are never stored: they are derived from expenses, splits and
//     settlements at read time (see internal/ledger).
package models
