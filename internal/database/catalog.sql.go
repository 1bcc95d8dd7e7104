package database

import (
	"context"
)

const createPlatform = `
INSERT INTO platforms (name) VALUES ($1)
RETURNING id, name
`

func (q *Queries) CreatePlatform(ctx context.Context, name string) (Platform, error) {
	row := q.db.QueryRow(ctx, createPlatform, name)
	var i Platform
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const getPlatformByName = `
SELECT id, name FROM platforms WHERE name = $1
`

func (q *Queries) GetPlatformByName(ctx context.Context, name string) (Platform, error) {
	row := q.db.QueryRow(ctx, getPlatformByName, name)
	var i Platform
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const listPlatforms = `
SELECT id, name FROM platforms ORDER BY name ASC
`

func (q *Queries) ListPlatforms(ctx context.Context) ([]Platform, error) {
	rows, err := q.db.Query(ctx, listPlatforms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Platform{}
	for rows.Next() {
		var i Platform
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createCompany = `
INSERT INTO companies (name) VALUES ($1)
RETURNING id, name
`

func (q *Queries) CreateCompany(ctx context.Context, name string) (Company, error) {
	row := q.db.QueryRow(ctx, createCompany, name)
	var i Company
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const getCompanyByName = `
SELECT id, name FROM companies WHERE name = $1
`

func (q *Queries) GetCompanyByName(ctx context.Context, name string) (Company, error) {
	row := q.db.QueryRow(ctx, getCompanyByName, name)
	var i Company
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const getCompanyByID = `
SELECT id, name FROM companies WHERE id = $1
`

func (q *Queries) GetCompanyByID(ctx context.Context, id int32) (Company, error) {
	row := q.db.QueryRow(ctx, getCompanyByID, id)
	var i Company
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const listCompanies = `
SELECT id, name FROM companies ORDER BY name ASC
`

func (q *Queries) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := q.db.Query(ctx, listCompanies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Company{}
	for rows.Next() {
		var i Company
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createTopic = `
INSERT INTO topics (name) VALUES ($1)
RETURNING id, name
`

func (q *Queries) CreateTopic(ctx context.Context, name string) (Topic, error) {
	row := q.db.QueryRow(ctx, createTopic, name)
	var i Topic
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const getTopicByName = `
SELECT id, name FROM topics WHERE name = $1
`

func (q *Queries) GetTopicByName(ctx context.Context, name string) (Topic, error) {
	row := q.db.QueryRow(ctx, getTopicByName, name)
	var i Topic
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const listTopics = `
SELECT id, name FROM topics ORDER BY name ASC
`

func (q *Queries) ListTopics(ctx context.Context) ([]Topic, error) {
	rows, err := q.db.Query(ctx, listTopics)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Topic{}
	for rows.Next() {
		var i Topic
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
