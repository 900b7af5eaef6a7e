// Package binstall provides the building blocks for the cargo-binstall
// provisioning pipeline that runs on build agents.
//
// At the core, a [Pipeline] executes a fixed sequence of [Stage] functions,
// stopping at the first failure and reporting a single success or failure
// line for the whole run. The [TaskRunner] wraps external command execution,
// capturing exit code and output into an [ExecResult] that stages inspect
// to decide how to proceed.
//
// The concrete stages live in the task package; platform resolution, archive
// download and extraction are implemented by the target, fetch and archive
// packages respectively.
package binstall
