package olink

// Parsers below validate tuple arity and positional types only — per
// spec, payload values themselves are opaque and never schema-checked.

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asArgs(v any) ([]any, bool) {
	if v == nil {
		return nil, true
	}
	args, ok := v.([]any)
	return args, ok
}

func asProps(v any) (map[string]any, bool) {
	if v == nil {
		return map[string]any{}, true
	}
	props, ok := v.(map[string]any)
	return props, ok
}

func parseObjectIdOnly(m Message) (objectId string, ok bool) {
	if len(m) != 2 {
		return "", false
	}
	return asString(m[1])
}

func parseInit(m Message) (objectId string, props map[string]any, ok bool) {
	if len(m) != 3 {
		return "", nil, false
	}
	objectId, ok = asString(m[1])
	if !ok {
		return "", nil, false
	}
	props, ok = asProps(m[2])
	return objectId, props, ok
}

func parsePropertyChange(m Message) (propertyId string, value any, ok bool) {
	if len(m) != 3 {
		return "", nil, false
	}
	propertyId, ok = asString(m[1])
	if !ok {
		return "", nil, false
	}
	return propertyId, m[2], true
}

func parseSignal(m Message) (signalId string, args []any, ok bool) {
	if len(m) != 3 {
		return "", nil, false
	}
	signalId, ok = asString(m[1])
	if !ok {
		return "", nil, false
	}
	args, ok = asArgs(m[2])
	return signalId, args, ok
}

func parseInvoke(m Message) (requestId int64, methodId string, args []any, ok bool) {
	if len(m) != 4 {
		return 0, "", nil, false
	}
	requestId, ok = asInt64(m[1])
	if !ok {
		return 0, "", nil, false
	}
	methodId, ok = asString(m[2])
	if !ok {
		return 0, "", nil, false
	}
	args, ok = asArgs(m[3])
	return requestId, methodId, args, ok
}

func parseInvokeReply(m Message) (requestId int64, methodId string, value any, ok bool) {
	if len(m) != 4 {
		return 0, "", nil, false
	}
	requestId, ok = asInt64(m[1])
	if !ok {
		return 0, "", nil, false
	}
	methodId, ok = asString(m[2])
	if !ok {
		return 0, "", nil, false
	}
	return requestId, methodId, m[3], true
}

func parseError(m Message) (msgType Kind, requestId int64, errorString string, ok bool) {
	if len(m) != 4 {
		return 0, 0, "", false
	}
	n, ok := asInt(m[1])
	if !ok {
		return 0, 0, "", false
	}
	requestId, ok = asInt64(m[2])
	if !ok {
		return 0, 0, "", false
	}
	errorString, ok = asString(m[3])
	return Kind(n), requestId, errorString, ok
}
