package web

import (
	"errors"
	"net/http"

	"github.com/Izrekatel/Yatube/internal/model"
)

type accountFormData struct {
	basePage
	Username  string
	Email     string
	FirstName string
	LastName  string
	Errors    map[string]string
}

// Account renders the viewer's own account page.
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}

	data := struct {
		basePage
	}{basePage: h.base(w, r, "Аккаунт")}
	h.render.Render(w, http.StatusOK, "account.html", data)
}

// AccountUpdate renders and processes the self-service profile form,
// including the avatar upload.
func (h *Handler) AccountUpdate(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	form := accountFormData{
		basePage: h.base(w, r, "Изменить данные"),
		Username: viewer.Username,
		Email:    viewer.Email,
		Errors:   map[string]string{},
	}
	if viewer.FirstName != nil {
		form.FirstName = *viewer.FirstName
	}
	if viewer.LastName != nil {
		form.LastName = *viewer.LastName
	}

	if r.Method == http.MethodGet {
		h.render.Render(w, http.StatusOK, "account_form.html", form)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		form.Errors["username"] = "Не удалось обработать форму"
		h.render.Render(w, http.StatusOK, "account_form.html", form)
		return
	}

	form.Username = r.FormValue("username")
	form.Email = r.FormValue("email")
	form.FirstName = r.FormValue("first_name")
	form.LastName = r.FormValue("last_name")

	req := &model.UpdateAccountRequest{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()
		avatar, err := h.media.UploadAvatar(r.Context(), file, header)
		if err != nil {
			form.Errors["avatar"] = uploadErrorMessage(err)
			h.render.Render(w, http.StatusOK, "account_form.html", form)
			return
		}
		req.AvatarURL = &avatar.URL
		req.AvatarKey = &avatar.Key
	} else if err != http.ErrMissingFile {
		form.Errors["avatar"] = "Не удалось прочитать файл"
		h.render.Render(w, http.StatusOK, "account_form.html", form)
		return
	}

	if _, err := h.users.UpdateAccount(r.Context(), viewer.ID, req); err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			form.Errors["username"] = "Это имя пользователя уже занято"
		case errors.Is(err, model.ErrEmailExists):
			form.Errors["email"] = "Этот email уже зарегистрирован"
		default:
			form.Errors["username"] = err.Error()
		}
		h.render.Render(w, http.StatusOK, "account_form.html", form)
		return
	}

	h.sessions.AddFlash(w, r, "Данные обновлены")
	http.Redirect(w, r, "/account/", http.StatusFound)
}
