package database

// GetUserInfo returns the stored row for userID, creating it on first
// contact.
func (d *DBInstance) GetUserInfo(userID string) (*User, error) {
	var user User
	result := d.db.Where(&User{ID: userID}).FirstOrCreate(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (d *DBInstance) SaveUserInfo(userInfo *User) error {
	return d.db.Save(userInfo).Error
}

// SetBanned flips a user's ban flag, creating the row if needed.
func (d *DBInstance) SetBanned(userID string, banned bool) error {
	user, err := d.GetUserInfo(userID)
	if err != nil {
		return err
	}
	user.IsBanned = banned
	return d.SaveUserInfo(user)
}
