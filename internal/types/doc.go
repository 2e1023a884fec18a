/*
Package types defines core data structures used throughout postboard.

# Overview

The types package provides shared type definitions for:
  - Posts and the draft buffer used by the add and edit forms
  - Remote fetch requests and results
  - Fetch history entries
  - TLS options for the HTTP transport

# Post Types

Post:
  - One record of the remote collection
  - Identified by ID, unique within a collection
  - UserID is carried through from the API but never edited

Draft:
  - Transient title/body buffer
  - Backs both the add form and the edit form

# Fetch Types

FetchRequest:
  - Method, URL and headers of one remote read

FetchResult:
  - Status, headers, body and timing of one remote read
  - Error holds transport failures (no HTTP response)

HistoryEntry:
  - One row of the fetch log

TLSConfig:
  - Client certificates (mTLS)
  - CA certificates
  - InsecureSkipVerify flag
*/
package types
