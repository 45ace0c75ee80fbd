// Package schema holds the DDL shared by the embedded databases.
package schema

const Projects = `
	CREATE TABLE IF NOT EXISTS projects (
		id VARCHAR NOT NULL PRIMARY KEY,
		name VARCHAR NOT NULL,
		target_maturity INTEGER NOT NULL DEFAULT 3,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const Requirements = `
	CREATE TABLE IF NOT EXISTS requirements (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		standard_id VARCHAR NOT NULL,
		code VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		domain VARCHAR NULL,
		maturity INTEGER NOT NULL DEFAULT 0
	);
`

const Controls = `
	CREATE TABLE IF NOT EXISTS controls (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		standard_id VARCHAR NOT NULL,
		code VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		domain VARCHAR NULL,
		maturity INTEGER NOT NULL DEFAULT 0
	);
`

const SoAEntries = `
	CREATE TABLE IF NOT EXISTS soa_entries (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		control_id VARCHAR NOT NULL,
		applicable BOOLEAN NOT NULL DEFAULT TRUE,
		implementation_status VARCHAR NULL,
		justification VARCHAR NULL,
		UNIQUE (project_id, control_id)
	);
`

const Nonconformities = `
	CREATE TABLE IF NOT EXISTS nonconformities (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const ActionPlans = `
	CREATE TABLE IF NOT EXISTS action_plans (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		due_date TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const Risks = `
	CREATE TABLE IF NOT EXISTS risks (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const Incidents = `
	CREATE TABLE IF NOT EXISTS incidents (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

// BootQueries creates every table; all statements are idempotent.
var BootQueries = []string{
	Projects,
	Requirements,
	Controls,
	SoAEntries,
	Nonconformities,
	ActionPlans,
	Risks,
	Incidents,
}
