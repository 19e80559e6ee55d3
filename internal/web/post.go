package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Izrekatel/Yatube/internal/model"
)

type postFormData struct {
	basePage
	FormTitle   string
	ButtonLabel string
	Text        string
	GroupID     int64
	Groups      []model.Group
	Errors      map[string]string
}

// PostDetail renders a single post with its comments.
func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	post, err := h.posts.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, err, "post detail")
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), postID, 0, 0)
	if err != nil {
		h.serverError(w, err, "post detail comments")
		return
	}

	authorPosts, err := h.posts.List(r.Context(), model.PostFilter{AuthorID: &post.AuthorID}, 1, 0)
	if err != nil {
		h.serverError(w, err, "post detail author count")
		return
	}

	base := h.base(w, r, "Пост "+strconv.FormatInt(post.ID, 10))
	data := struct {
		basePage
		Post            *model.Post
		Comments        []model.Comment
		AuthorPostCount int
		CanEdit         bool
	}{
		basePage:        base,
		Post:            post,
		Comments:        comments.Results,
		AuthorPostCount: authorPosts.Count,
		CanEdit:         base.Viewer != nil && base.Viewer.ID == post.AuthorID,
	}
	h.render.Render(w, http.StatusOK, "post_detail.html", data)
}

// PostCreate renders and processes the new post form. On success the author
// lands on their own profile.
func (h *Handler) PostCreate(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	form := postFormData{
		basePage:    h.base(w, r, "Новая запись"),
		FormTitle:   "Новая запись",
		ButtonLabel: "Добавить",
		Errors:      map[string]string{},
	}
	form.Groups = h.loadGroups(r)

	if r.Method == http.MethodGet {
		h.render.Render(w, http.StatusOK, "post_form.html", form)
		return
	}

	text, groupID, image, ok := h.parsePostForm(w, r, &form)
	if !ok {
		return
	}

	_, err := h.posts.Create(r.Context(), viewer.ID, text, groupID, image)
	if err != nil {
		if h.fillPostErrors(err, &form) {
			h.render.Render(w, http.StatusOK, "post_form.html", form)
			return
		}
		h.serverError(w, err, "post create")
		return
	}

	if h.metrics != nil {
		h.metrics.PostsCreated.Inc()
	}
	h.sessions.AddFlash(w, r, "Запись опубликована")
	http.Redirect(w, r, "/profile/"+viewer.Username+"/", http.StatusFound)
}

// PostEdit renders and processes the edit form. Anyone but the author is
// sent back to the post page.
func (h *Handler) PostEdit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	post, err := h.posts.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, err, "post edit")
		return
	}

	postURL := "/posts/" + strconv.FormatInt(postID, 10) + "/"
	if post.AuthorID != viewer.ID {
		http.Redirect(w, r, postURL, http.StatusFound)
		return
	}

	form := postFormData{
		basePage:    h.base(w, r, "Редактировать запись"),
		FormTitle:   "Редактировать запись",
		ButtonLabel: "Сохранить",
		Text:        post.Text,
		Errors:      map[string]string{},
	}
	if post.GroupID != nil {
		form.GroupID = *post.GroupID
	}
	form.Groups = h.loadGroups(r)

	if r.Method == http.MethodGet {
		h.render.Render(w, http.StatusOK, "post_form.html", form)
		return
	}

	text, groupID, image, ok := h.parsePostForm(w, r, &form)
	if !ok {
		return
	}

	if _, err := h.posts.Update(r.Context(), postID, viewer.ID, text, groupID, image); err != nil {
		if h.fillPostErrors(err, &form) {
			h.render.Render(w, http.StatusOK, "post_form.html", form)
			return
		}
		h.serverError(w, err, "post update")
		return
	}

	http.Redirect(w, r, postURL, http.StatusFound)
}

// AddComment processes the comment form under a post.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	postURL := "/posts/" + strconv.FormatInt(postID, 10) + "/"

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, postURL, http.StatusFound)
		return
	}

	_, err = h.comments.Create(r.Context(), postID, viewer.ID, r.FormValue("text"))
	switch {
	case err == nil:
	case errors.Is(err, model.ErrPostNotFound):
		h.NotFound(w, r)
		return
	case errors.Is(err, model.ErrTextRequired), errors.Is(err, model.ErrTextTooLong):
		h.sessions.AddFlash(w, r, "Комментарий не сохранён: проверьте текст")
	default:
		h.serverError(w, err, "add comment")
		return
	}

	http.Redirect(w, r, postURL, http.StatusFound)
}

// parsePostForm reads the multipart post form, storing the uploaded image
// when present. Invalid images re-render the form instead of failing.
func (h *Handler) parsePostForm(w http.ResponseWriter, r *http.Request, form *postFormData) (string, *int64, *model.UploadResult, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		form.Errors["text"] = "Не удалось обработать форму"
		h.render.Render(w, http.StatusOK, "post_form.html", *form)
		return "", nil, nil, false
	}

	text := r.FormValue("text")
	form.Text = text

	var groupID *int64
	if v := r.FormValue("group"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			form.Errors["group"] = "Выберите сообщество из списка"
			h.render.Render(w, http.StatusOK, "post_form.html", *form)
			return "", nil, nil, false
		}
		groupID = &id
		form.GroupID = id
	}

	var image *model.UploadResult
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		image, err = h.media.UploadPostImage(r.Context(), file, header)
		if err != nil {
			form.Errors["image"] = uploadErrorMessage(err)
			h.render.Render(w, http.StatusOK, "post_form.html", *form)
			return "", nil, nil, false
		}
	} else if err != http.ErrMissingFile {
		form.Errors["image"] = "Не удалось прочитать файл"
		h.render.Render(w, http.StatusOK, "post_form.html", *form)
		return "", nil, nil, false
	}

	return text, groupID, image, true
}

func (h *Handler) fillPostErrors(err error, form *postFormData) bool {
	switch {
	case errors.Is(err, model.ErrTextRequired):
		form.Errors["text"] = "Текст записи обязателен"
	case errors.Is(err, model.ErrTextTooLong):
		form.Errors["text"] = "Текст записи слишком длинный"
	case errors.Is(err, model.ErrGroupNotFound):
		form.Errors["group"] = "Такого сообщества нет"
	default:
		return false
	}
	return true
}

func (h *Handler) loadGroups(r *http.Request) []model.Group {
	groups, err := h.groups.List(r.Context())
	if err != nil {
		return nil
	}
	return groups
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrFileTooLarge):
		return "Файл слишком большой"
	case errors.Is(err, model.ErrInvalidImageType):
		return "Загрузите картинку"
	default:
		return "Не удалось загрузить картинку"
	}
}
