// Package tracking provides the record store for internally logged tracking
// data: conversion logs, pixel receipts and event snapshots, plus the write
// paths for reconciliation summaries and verification runs.
package tracking
