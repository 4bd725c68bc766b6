package models

import (
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Container struct {
	ID          pgtype.UUID
	TenantID    pgtype.UUID
	ParentID    pgtype.UUID
	OwnerUserID pgtype.UUID
	Name        string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Asset struct {
	ID          pgtype.UUID
	TenantID    pgtype.UUID
	ContainerID pgtype.UUID
	AssignedTo  pgtype.UUID
	Name        string
	Description sql.NullString
	SerialNo    sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Member struct {
	TenantID  pgtype.UUID
	UserID    pgtype.UUID
	FirstName sql.NullString
	LastName  sql.NullString
	FullName  sql.NullString
	Email     sql.NullString
}
