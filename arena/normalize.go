package arena

// Conversion from the legacy backend record shape into the canonical one.
// Applied at every decode point, so downstream code sees canonical entities
// exclusively regardless of which backend produced the record.
//
// Every rule fires only when the canonical field is absent and the legacy
// field is present, so normalizing an already-canonical record is a no-op.

func normalizeChannel(ch *Channel) {
	if ch == nil {
		return
	}
	if ch.Kind == "" && ch.Class != "" {
		ch.Kind = Kind(ch.Class)
	}
	if ch.Visibility == "" && ch.Status != "" {
		ch.Visibility = ch.Status
	}
	if ch.Counts == nil && ch.Length != nil {
		counts := &ChannelCounts{
			Blocks:   *ch.Length,
			Channels: 0,
			Total:    *ch.Length,
		}
		if ch.CollaboratorCount != nil {
			counts.Collaborators = *ch.CollaboratorCount
		}
		ch.Counts = counts
	}
	if ch.Owner == nil && ch.LegacyUser != nil {
		lu := ch.LegacyUser
		name := lu.FullName
		if name == "" {
			name = lu.Username
		}
		ch.Owner = &User{
			DisplayName: name,
			Slug:        lu.Username,
			Avatar:      lu.Avatar,
			Initials:    "",
		}
	}
}

func normalizeBlock(b *Block) {
	if b == nil {
		return
	}
	// Only the discriminator is renamed; legacy payloads pass through as-is.
	if b.Kind == "" && b.Class != "" {
		b.Kind = Kind(b.Class)
	}
}

func normalizeUser(u *User) {
	if u == nil {
		return
	}
	if u.Kind == "" && u.Class != "" {
		u.Kind = Kind(u.Class)
	}
	if u.DisplayName == "" {
		if u.FullName != "" {
			u.DisplayName = u.FullName
		} else if u.Username != "" {
			u.DisplayName = u.Username
		}
	}
	if u.Slug == "" && u.Username != "" {
		u.Slug = u.Username
	}
	if u.Counts == nil && (u.ChannelCount != nil || u.FollowerCount != nil || u.FollowingCount != nil) {
		counts := &UserCounts{}
		if u.ChannelCount != nil {
			counts.Channels = *u.ChannelCount
		}
		if u.FollowerCount != nil {
			counts.Followers = *u.FollowerCount
		}
		if u.FollowingCount != nil {
			counts.Following = *u.FollowingCount
		}
		u.Counts = counts
	}
}
