// Package siteask provides a local, CLI-based tool for asking questions
// about the content of a website. It crawls a bounded region of a site
// (or ingests local files), extracts readable text, stores the collected
// documents, and answers natural language questions against them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, trafilatura/).
package siteask
