package database

// GetGroupInfo returns the stored settings row for groupID, creating it
// with defaults when the bot first sees the group.
func (d *DBInstance) GetGroupInfo(groupID string) (*Group, error) {
	var group Group
	result := d.db.Where(&Group{ID: groupID}).FirstOrCreate(&group)
	if result.Error != nil {
		return nil, result.Error
	}
	return &group, nil
}

func (d *DBInstance) SaveGroupInfo(groupInfo *Group) error {
	return d.db.Save(groupInfo).Error
}

func (d *DBInstance) DeleteGroupInfo(groupInfo *Group) error {
	return d.db.Delete(groupInfo).Error
}
