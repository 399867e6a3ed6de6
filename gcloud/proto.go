package gcloud

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ConfigToProto fills msg from an agent-supplied config map. The config is
// desanitized first so reserved field names round-trip, then decoded through
// protojson. Unknown fields are rejected so typos surface as invalid input
// rather than silently dropped settings.
func ConfigToProto(cfg map[string]any, msg proto.Message) error {
	raw, err := json.Marshal(Desanitize(cfg))
	if err != nil {
		return InvalidArgumentf("config is not serializable: %v", err)
	}
	opts := protojson.UnmarshalOptions{DiscardUnknown: false}
	if err := opts.Unmarshal(raw, msg); err != nil {
		return WrapError(KindInvalidArgument, "config does not match resource schema", err)
	}
	return nil
}

// MessageToMap converts a proto message to a plain map with snake_case keys,
// matching the shape agents see in configs. Enums render as their names,
// timestamps as RFC 3339 strings, and durations as Go duration strings.
func MessageToMap(msg proto.Message) map[string]any {
	if msg == nil {
		return nil
	}
	return messageToMap(msg.ProtoReflect())
}

func messageToMap(m protoreflect.Message) map[string]any {
	out := make(map[string]any)
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		out[string(fd.Name())] = fieldToValue(fd, v)
		return true
	})
	return out
}

func fieldToValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsMap():
		entries := make(map[string]any, v.Map().Len())
		valDesc := fd.MapValue()
		v.Map().Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			entries[k.String()] = scalarToValue(valDesc, mv)
			return true
		})
		return entries
	case fd.IsList():
		list := v.List()
		items := make([]any, 0, list.Len())
		for i := 0; i < list.Len(); i++ {
			items = append(items, scalarToValue(fd, list.Get(i)))
		}
		return items
	default:
		return scalarToValue(fd, v)
	}
}

func scalarToValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.EnumKind:
		desc := fd.Enum().Values().ByNumber(v.Enum())
		if desc == nil {
			return int32(v.Enum())
		}
		return string(desc.Name())
	case protoreflect.MessageKind, protoreflect.GroupKind:
		switch msg := v.Message().Interface().(type) {
		case *timestamppb.Timestamp:
			return msg.AsTime().Format(time.RFC3339)
		case *durationpb.Duration:
			return msg.AsDuration().String()
		default:
			return messageToMap(v.Message())
		}
	case protoreflect.BytesKind:
		return base64.StdEncoding.EncodeToString(v.Bytes())
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return v.Int()
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return v.Uint()
	default:
		return v.Interface()
	}
}
