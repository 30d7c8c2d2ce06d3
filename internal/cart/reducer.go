package cart

import (
	"fmt"
	"math"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
)

type ActionKind int

const (
	ActionAdd ActionKind = iota + 1
	ActionRemove
	ActionUpdateQuantity
	ActionClear
)

func (k ActionKind) String() string {
	switch k {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionUpdateQuantity:
		return "update_quantity"
	case ActionClear:
		return "clear"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

type Action struct {
	Kind      ActionKind
	Product   domain.Product // ActionAdd
	ProductID string         // ActionRemove, ActionUpdateQuantity
	Quantity  int            // ActionAdd, ActionUpdateQuantity
}

func Add(product domain.Product, quantity int) Action {
	return Action{Kind: ActionAdd, Product: product, Quantity: quantity}
}

func Remove(productID string) Action {
	return Action{Kind: ActionRemove, ProductID: productID}
}

func UpdateQuantity(productID string, quantity int) Action {
	return Action{Kind: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func Clear() Action {
	return Action{Kind: ActionClear}
}

// Reduce returns the cart that results from applying action to state.
// state is never modified.
func Reduce(state domain.Cart, action Action) (domain.Cart, error) {
	switch action.Kind {
	case ActionAdd:
		if action.Quantity <= 0 {
			return state, fmt.Errorf("add[%s] quantity[%d]: %w", action.Product.ID, action.Quantity, domain.ErrInvalidQuantity)
		}
		if action.Product.ID == "" {
			return state, fmt.Errorf("add: %w", domain.ErrInvalidProduct)
		}

		i := state.IndexOf(action.Product.ID)
		if i >= 0 && state.Items[i].Quantity > math.MaxInt-action.Quantity {
			return state, fmt.Errorf("add[%s] quantity[%d] overflows[%d]: %w",
				action.Product.ID, action.Quantity, state.Items[i].Quantity, domain.ErrInvalidQuantity)
		}

		next := state.Clone()
		if i >= 0 {
			next.Items[i].Quantity += action.Quantity
			return next, nil
		}

		next.Items = append(next.Items, domain.LineItem{Product: action.Product, Quantity: action.Quantity})
		return next, nil

	case ActionRemove:
		if state.IndexOf(action.ProductID) < 0 {
			return state, nil
		}

		next := state.Clone()
		next.Items = slices.DeleteFunc(next.Items, func(item domain.LineItem) bool {
			return item.Product.ID == action.ProductID
		})
		return next, nil

	case ActionUpdateQuantity:
		if action.Quantity <= 0 {
			return Reduce(state, Remove(action.ProductID))
		}

		i := state.IndexOf(action.ProductID)
		if i < 0 {
			return state, nil
		}

		next := state.Clone()
		next.Items[i].Quantity = action.Quantity
		return next, nil

	case ActionClear:
		return domain.Cart{}, nil

	default:
		return state, fmt.Errorf("unknown action %s", action.Kind)
	}
}
