package models

import (
	"database/sql"
	"errors"
	"time"
)

func CreatePost(db *sql.DB, creator *User, title, body string) (int64, error) {
	res, err := db.Exec(`INSERT INTO blogs (creator_name, creator_user_id, title, body, date) VALUES (?, ?, ?, ?, ?)`,
		creator.Name, creator.ID, title, body, Stamp(time.Now()))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func ListPosts(db *sql.DB) ([]Post, error) {
	rows, err := db.Query(`SELECT blog_id, creator_user_id, creator_name, title, body, date FROM blogs ORDER BY blog_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.CreatorID, &p.CreatorName, &p.Title, &p.Body, &p.Date); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func GetPost(db *sql.DB, id int) (*Post, error) {
	row := db.QueryRow(`SELECT blog_id, creator_user_id, creator_name, title, body, date FROM blogs WHERE blog_id = ?`, id)
	var p Post
	if err := row.Scan(&p.ID, &p.CreatorID, &p.CreatorName, &p.Title, &p.Body, &p.Date); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost overwrites title, body and date, keeping the id. Only the
// creator may edit; the ownership check is part of the UPDATE itself so a
// non-owner can never touch the row.
func UpdatePost(db *sql.DB, id int, editor *User, title, body string) error {
	res, err := db.Exec(`UPDATE blogs SET title = ?, body = ?, creator_name = ?, date = ? WHERE blog_id = ? AND creator_user_id = ?`,
		title, body, editor.Name, Stamp(time.Now()), id, editor.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := GetPost(db, id); err != nil {
			return err
		}
		return ErrNotAuthorized
	}
	return nil
}

// DeletePost removes the post when the requester owns it. Deleting an id that
// no longer exists succeeds (the DELETE affects zero rows); deleting someone
// else's post fails with ErrNotAuthorized.
func DeletePost(db *sql.DB, id int, requesterID int) error {
	res, err := db.Exec(`DELETE FROM blogs WHERE blog_id = ? AND creator_user_id = ?`, id, requesterID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := GetPost(db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		return ErrNotAuthorized
	}
	return nil
}
