package textbuf

// AddModifyFunc registers fn. Listeners run in registration order.
func (b *Buffer) AddModifyFunc(fn ModifyFunc) ListenerID {
	b.nextID++
	b.modify = append(b.modify, modifyListener{id: b.nextID, fn: fn})
	return b.nextID
}

func (b *Buffer) RemoveModifyFunc(id ListenerID) {
	for i, l := range b.modify {
		if l.id == id {
			b.modify = append(b.modify[:i:i], b.modify[i+1:]...)
			return
		}
	}
	b.reporter.Error("modify listener not registered", "id", id)
}

func (b *Buffer) AddPredeleteFunc(fn PredeleteFunc) ListenerID {
	b.nextID++
	b.predelete = append(b.predelete, predeleteListener{id: b.nextID, fn: fn})
	return b.nextID
}

func (b *Buffer) RemovePredeleteFunc(id ListenerID) {
	for i, l := range b.predelete {
		if l.id == id {
			b.predelete = append(b.predelete[:i:i], b.predelete[i+1:]...)
			return
		}
	}
	b.reporter.Error("pre-delete listener not registered", "id", id)
}

// callModify iterates over a snapshot so listeners may unregister
// themselves while being called.
func (b *Buffer) callModify(m Modification) {
	listeners := b.modify
	for _, l := range listeners {
		l.fn(m)
	}
}

func (b *Buffer) callPredelete(pos, nDeleted int) {
	listeners := b.predelete
	for _, l := range listeners {
		l.fn(pos, nDeleted)
	}
}
