// Package models defines the persisted tracking records: conversion logs
// (server-side platform send attempts), pixel receipts (client-captured
// events), event log snapshots, reconciliation summary rows and
// verification runs.
package models
