package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SetID est requis par la fabrique générique de handlers.
func (c *Category) SetID(id primitive.ObjectID)    { c.ID = id }
func (s *SubCategory) SetID(id primitive.ObjectID) { s.ID = id }
func (b *Brand) SetID(id primitive.ObjectID)       { b.ID = id }
func (p *Product) SetID(id primitive.ObjectID)     { p.ID = id }
func (u *User) SetID(id primitive.ObjectID)        { u.ID = id }
func (c *Cart) SetID(id primitive.ObjectID)        { c.ID = id }
func (c *Coupon) SetID(id primitive.ObjectID)      { c.ID = id }
func (o *Order) SetID(id primitive.ObjectID)       { o.ID = id }
func (r *Review) SetID(id primitive.ObjectID)      { r.ID = id }
